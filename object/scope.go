package object

import (
	"sync"
)

// Scope destroys the objects it created when closed, newest first.
//
//	scope := rt.NewScope()
//	defer scope.Close()
//	car, err := scope.New(carClass)
type Scope struct {
	rt    *Runtime
	insts []*Instance
	mu    sync.Mutex
}

// NewScope creates an empty scope.
func (rt *Runtime) NewScope() *Scope {
	return &Scope{rt: rt}
}

// New is Runtime.New with the object tracked by the scope.
func (s *Scope) New(class *Class, args ...any) (*Instance, error) {
	inst, err := s.rt.New(class, args...)
	if err != nil {
		return nil, err
	}
	s.Adopt(inst)
	return inst, nil
}

// NewInPlace is Runtime.NewInPlace with the object tracked by the scope.
func (s *Scope) NewInPlace(dst *Instance, class *Class, args ...any) error {
	if err := s.rt.NewInPlace(dst, class, args...); err != nil {
		return err
	}
	s.Adopt(dst)
	return nil
}

// Adopt tracks an object created elsewhere.
func (s *Scope) Adopt(inst *Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insts = append(s.insts, inst)
}

// Len returns the number of tracked objects.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.insts)
}

// Close destroys and releases tracked objects in reverse creation order.
// Objects already destroyed are skipped. The scope may be reused.
func (s *Scope) Close() {
	s.mu.Lock()
	insts := s.insts
	s.insts = nil
	s.mu.Unlock()

	for i := len(insts) - 1; i >= 0; i-- {
		s.rt.DestroyAndRelease(insts[i])
	}
}
