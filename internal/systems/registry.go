package systems

import (
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/crucible/internal/combat"
)

// Registry manages registered jobs.
type Registry struct {
	mu       sync.RWMutex
	jobs     map[JobKey]Job
	defaults map[combat.JobID]string
}

// JobKey identifies a specific version of a job.
type JobKey struct {
	ID      combat.JobID
	Version string
}

// NewRegistry creates a new job registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs:     make(map[JobKey]Job),
		defaults: make(map[combat.JobID]string),
	}
}

// Register adds a job to the registry. The first version registered
// for an ID becomes its default. Panics on an empty version or a
// duplicate registration.
func (r *Registry) Register(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := job.ID()
	version := strings.TrimSpace(job.Version())
	if version == "" {
		panic(fmt.Sprintf("job %d must define a version", id))
	}
	key := JobKey{ID: id, Version: version}
	if _, exists := r.jobs[key]; exists {
		panic(fmt.Sprintf("job %d version %s already registered", id, version))
	}
	if _, exists := r.defaults[id]; !exists {
		r.defaults[id] = version
	}
	r.jobs[key] = job
}

// Get returns the default version of the job for the given ID, or nil
// if not found.
func (r *Registry) Get(id combat.JobID) Job {
	return r.GetVersion(id, "")
}

// GetVersion returns the job for the given ID and version. If version
// is empty, the default registered version is returned.
func (r *Registry) GetVersion(id combat.JobID, version string) Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved := strings.TrimSpace(version)
	if resolved == "" {
		resolved = r.defaults[id]
	}
	if resolved == "" {
		return nil
	}
	return r.jobs[JobKey{ID: id, Version: resolved}]
}

// MustGet returns the job for the given ID, or panics if not found.
func (r *Registry) MustGet(id combat.JobID) Job {
	job := r.Get(id)
	if job == nil {
		panic(fmt.Sprintf("job %d not registered", id))
	}
	return job
}

// List returns all registered jobs.
func (r *Registry) List() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, job)
	}
	return result
}

// FindName returns the default version of the job whose name matches,
// ignoring case, or nil when no job carries the name. Scenario scripts
// and tools address jobs by name.
func (r *Registry) FindName(name string) Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, version := range r.defaults {
		job := r.jobs[JobKey{ID: id, Version: version}]
		if job != nil && strings.EqualFold(job.Name(), name) {
			return job
		}
	}
	return nil
}

// ActionByName resolves an action of job by its display name, ignoring
// case.
func ActionByName(job Job, name string) (combat.ActionID, bool) {
	for _, id := range job.Actions() {
		if strings.EqualFold(job.ActionName(id), name) {
			return id, true
		}
	}
	return 0, false
}

// DefaultRegistry is the global job registry. Job packages register
// themselves via init() functions.
var DefaultRegistry = NewRegistry()

// Register adds a job to the DefaultRegistry.
func Register(job Job) {
	DefaultRegistry.Register(job)
}
