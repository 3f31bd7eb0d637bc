package locks

import "sync"

// tableLocks hands out one mutex per table id so that the multi-step write
// sequences touching a single table (add line, remove line, reset,
// finalize) never interleave. Different tables proceed concurrently.
type tableLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

var tables = tableLocks{
	locks: make(map[uint]*sync.Mutex),
}

func (tl *tableLocks) get(tableID uint) *sync.Mutex {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	l, ok := tl.locks[tableID]
	if !ok {
		l = &sync.Mutex{}
		tl.locks[tableID] = l
	}
	return l
}

// LockTable acquires the exclusive lock for one table id.
func LockTable(tableID uint) {
	tables.get(tableID).Lock()
}

// UnlockTable releases the lock taken by LockTable.
func UnlockTable(tableID uint) {
	tables.get(tableID).Unlock()
}
