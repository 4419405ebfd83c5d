package asset

import "testing"

func header(id ID, deps ...ID) Header {
	d := make(map[ID]struct{}, len(deps))
	for _, dep := range deps {
		d[dep] = struct{}{}
	}
	return Header{ID: id, Kind: KindTexture, Dependencies: d}
}

func TestRequestLoadDependencyChainOrdersDepsFirst(t *testing.T) {
	reg := NewRegistry()
	mustPut(t, reg, header("base"))
	mustPut(t, reg, header("material", "base"))

	pool := NewTaskPool()
	qid, err := pool.RequestLoad("material", reg)
	if err != nil {
		t.Fatalf("RequestLoad: %v", err)
	}

	var seenBase, seenMaterial bool
	for {
		task, ok := pool.PeekTask()
		if !ok {
			break
		}
		if task.Command.ID == "base" {
			seenBase = true
		}
		if task.Command.ID == "material" {
			if !seenBase {
				t.Fatalf("material task scheduled before base finished decomposing dependencies")
			}
			seenMaterial = true
		}
		pool.TaskDone(task.ID)
	}
	if !seenBase || !seenMaterial {
		t.Fatalf("expected both base and material tasks, got base=%v material=%v", seenBase, seenMaterial)
	}
	if pool.Pending(qid) {
		t.Fatalf("expected request %s to be fully drained", qid)
	}
}

func TestCollectLoadTasksDetectsCycle(t *testing.T) {
	reg := NewRegistry()
	mustPut(t, reg, header("a", "b"))
	mustPut(t, reg, header("b", "a"))

	pool := NewTaskPool()
	if _, err := pool.RequestLoad("a", reg); err == nil {
		t.Fatalf("expected circular dependency error")
	}
}

func TestRequestLoadAllEmptyRegistryHasNoPendingTasks(t *testing.T) {
	reg := NewRegistry()
	pool := NewTaskPool()
	qid, err := pool.RequestLoadAll(reg)
	if err != nil {
		t.Fatalf("RequestLoadAll: %v", err)
	}
	if pool.Pending(qid) {
		t.Fatalf("expected no pending tasks for an empty registry")
	}
	if _, ok := pool.PeekTask(); ok {
		t.Fatalf("expected no schedulable task")
	}
}

func TestTaskFailedDropsOnlyTheFailingRequest(t *testing.T) {
	reg := NewRegistry()
	mustPut(t, reg, header("ok"))
	mustPut(t, reg, header("bad"))

	pool := NewTaskPool()
	qidBad, err := pool.RequestLoad("bad", reg)
	if err != nil {
		t.Fatalf("RequestLoad bad: %v", err)
	}
	qidOK, err := pool.RequestLoad("ok", reg)
	if err != nil {
		t.Fatalf("RequestLoad ok: %v", err)
	}

	// Requests are scheduled in insertion order, so bad's Read comes first.
	task, ok := pool.PeekTask()
	if !ok {
		t.Fatalf("expected a schedulable task")
	}
	if task.Command.ID != "bad" {
		t.Fatalf("expected the first schedulable task to belong to bad, got %s", task.Command.ID)
	}
	pool.TaskFailed(task.ID)

	// Drain whichever request is still alive.
	drained := 0
	for {
		task, ok := pool.PeekTask()
		if !ok {
			break
		}
		pool.TaskDone(task.ID)
		drained++
	}
	if drained != 2 {
		t.Fatalf("expected ok's Read and Load to run after bad failed, ran %d tasks", drained)
	}

	if pool.Pending(qidBad) {
		t.Fatalf("failing request %s should have been removed", qidBad)
	}
	if pool.Pending(qidOK) {
		t.Fatalf("surviving request %s should have completed via TaskDone", qidOK)
	}
}

func mustPut(t *testing.T, reg *Registry, h Header) {
	t.Helper()
	if err := reg.Put(h); err != nil {
		t.Fatalf("Registry.Put(%s): %v", h.ID, err)
	}
}
