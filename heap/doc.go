// Package heap provides the handle table backing engine-allocated objects
// and asynchronous tasks.
//
// A Table maps small integer handles to Go values. Released slots are
// recycled through a free list, and an optional capacity turns unbounded
// growth into an explicit allocation failure:
//
//	objects := heap.NewTable(1024)
//
//	h, err := objects.Insert(classID, inst)
//	if errors.Is(err, heap.ErrExhausted) {
//	    // report allocation failure
//	}
//
//	v, ok := objects.Get(h)
//	objects.Remove(h)
//
// # Observers
//
// Observers see every allocation, release and exhausted insert:
//
//	objects.Subscribe(heap.ObserverFunc(func(e heap.Event) {
//	    log.Printf("%s handle %d", e.Type, e.Handle)
//	}))
//
// # Dropper
//
// Values implementing Dropper are dropped when removed, and when Close
// tears the table down with values still live.
package heap
