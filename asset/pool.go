package asset

import (
	"fmt"

	"github.com/dawnengine/yage2/dawnerr"
)

// request is one in-flight RequestID and its still-pending Tasks.
type request struct {
	id      RequestID
	pending []*Task
}

// TaskPool holds every in-flight Request and its decomposed Task DAG. It
// is owned and mutated only by the asset Hub's goroutine.
type TaskPool struct {
	requests []*request
	peekable bool
}

// NewTaskPool returns an empty TaskPool.
func NewTaskPool() *TaskPool {
	return &TaskPool{}
}

// DoneResult reports the outcome of TaskDone.
type DoneResult struct {
	// RequestCompleted is non-nil when the completed task was the last
	// pending task of its request.
	RequestCompleted *RequestID
}

// collectLoadTasks recursively walks header.Dependencies, emitting each
// dependency's own task tree first, then — based on aid's current
// Registry state — zero, one, or two tasks for aid itself:
//
//	Empty  -> Read(aid) then Load(aid), Load depending on Read.
//	IR     -> Load(aid) depending on the dependency tasks.
//	Loaded -> no tasks.
//
// visited is the per-decomposition ancestor stack used for cycle
// detection; it is NOT shared across decompositions (a diamond dependency
// reachable twice through different paths is fine, a true cycle is not).
func collectLoadTasks(qid RequestID, aid ID, reg *Registry, visited map[ID]struct{}) ([]*Task, error) {
	if _, onStack := visited[aid]; onStack {
		return nil, dawnerr.New(dawnerr.Validation, "asset.collectLoadTasks", fmt.Errorf("%w: %s", ErrCircularDependency, aid))
	}
	visited[aid] = struct{}{}
	defer delete(visited, aid)

	header, err := reg.Header(aid)
	if err != nil {
		return nil, dawnerr.New(dawnerr.Validation, "asset.collectLoadTasks", fmt.Errorf("%w: %s", ErrAssetNotFound, aid))
	}

	var tasks []*Task
	for dep := range header.Dependencies {
		depTasks, err := collectLoadTasks(qid, dep, reg, visited)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, depTasks...)
	}

	state, err := reg.State(aid)
	if err != nil {
		return nil, dawnerr.New(dawnerr.Validation, "asset.collectLoadTasks", fmt.Errorf("%w: %s", ErrAssetNotFound, aid))
	}

	depIDs := make(map[TaskID]struct{}, len(tasks))
	for _, t := range tasks {
		depIDs[t.ID] = struct{}{}
	}

	switch state.Kind {
	case StateEmpty:
		readID := newTaskID(qid)
		tasks = append(tasks, &Task{
			ID:           readID,
			Command:      Command{Kind: CommandRead, ID: aid},
			dependencies: depIDs,
			state:        taskPending,
		})
		tasks = append(tasks, &Task{
			ID:           newTaskID(qid),
			Command:      Command{Kind: CommandLoad, ID: aid},
			dependencies: map[TaskID]struct{}{readID: {}},
			state:        taskPending,
		})
	case StateIR:
		tasks = append(tasks, &Task{
			ID:           newTaskID(qid),
			Command:      Command{Kind: CommandLoad, ID: aid},
			dependencies: depIDs,
			state:        taskPending,
		})
	case StateLoaded:
		// Already resident: no-op.
	}
	return tasks, nil
}

// RequestLoad decomposes aid (and its transitive dependencies) into a
// task DAG and enqueues it as a new Request.
func (p *TaskPool) RequestLoad(aid ID, reg *Registry) (RequestID, error) {
	qid := newRequestID()
	tasks, err := collectLoadTasks(qid, aid, reg, map[ID]struct{}{})
	if err != nil {
		return 0, err
	}
	p.requests = append(p.requests, &request{id: qid, pending: tasks})
	p.peekable = true
	return qid, nil
}

// RequestLoadAll decomposes every registered asset into one combined
// Request. A request with no assets succeeds immediately (an empty task
// list is still a valid, immediately-completable request).
func (p *TaskPool) RequestLoadAll(reg *Registry) (RequestID, error) {
	qid := newRequestID()
	var tasks []*Task
	for _, aid := range reg.Keys() {
		t, err := collectLoadTasks(qid, aid, reg, map[ID]struct{}{})
		if err != nil {
			return 0, err
		}
		tasks = append(tasks, t...)
	}
	p.requests = append(p.requests, &request{id: qid, pending: tasks})
	p.peekable = true
	return qid, nil
}

// RequestFree enqueues a single Free task for aid, used by the hub's
// periodic free scan once a Loaded asset's strong count drops to 1.
func (p *TaskPool) RequestFree(aid ID) RequestID {
	qid := newRequestID()
	task := &Task{ID: newTaskID(qid), Command: Command{Kind: CommandFree, ID: aid}, state: taskPending}
	p.requests = append(p.requests, &request{id: qid, pending: []*Task{task}})
	p.peekable = true
	return qid
}

// PeekTask returns the first Pending task (among all in-flight requests,
// in insertion order) whose dependencies are all Done, marking it
// Processing. It returns false when nothing is currently schedulable.
func (p *TaskPool) PeekTask() (Task, bool) {
	if !p.peekable {
		return Task{}, false
	}
	for _, req := range p.requests {
		for _, t := range req.pending {
			if t.ready() {
				t.state = taskProcessing
				return *t, true
			}
		}
	}
	p.peekable = false
	return Task{}, false
}

// TaskDone marks id Done, removes it from every sibling task's dependency
// set, and — if every task in its request is now Done — removes the
// request and reports RequestCompleted. Other requests are left intact.
func (p *TaskPool) TaskDone(id TaskID) DoneResult {
	for i, req := range p.requests {
		if req.id != id.Request {
			continue
		}
		for _, t := range req.pending {
			if t.ID == id {
				t.state = taskDone
			}
			delete(t.dependencies, id)
		}
		allDone := true
		for _, t := range req.pending {
			if t.state != taskDone {
				allDone = false
				break
			}
		}
		if allDone {
			p.requests = append(p.requests[:i:i], p.requests[i+1:]...)
			done := req.id
			return DoneResult{RequestCompleted: &done}
		}
		p.peekable = true
		return DoneResult{}
	}
	return DoneResult{}
}

// TaskFailed removes the entire Request that id belongs to; other
// requests are unaffected (resolves spec.md §9's Open Question in favor
// of the success-path semantics and scenario 2).
func (p *TaskPool) TaskFailed(id TaskID) {
	kept := p.requests[:0]
	for _, req := range p.requests {
		if req.id != id.Request {
			kept = append(kept, req)
		}
	}
	p.requests = kept
	p.peekable = true
}

// Pending reports whether qid still has outstanding tasks.
func (p *TaskPool) Pending(qid RequestID) bool {
	for _, req := range p.requests {
		if req.id == qid {
			return len(req.pending) > 0
		}
	}
	return false
}
