package document

// PanicWhileLocked simulates a holder dying inside the critical section.
func (s *Store) PanicWhileLocked(v any) {
	s.write(func() {
		panic(v)
	})
}
