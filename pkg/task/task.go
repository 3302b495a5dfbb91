// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package task is the host side of project automation: named, described
// actions that the CLI exposes as sub-commands.
package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/luxfi/vaults/pkg/application"
	"github.com/luxfi/vaults/pkg/constants"
)

// Args are the positional arguments a task was invoked with.
type Args []string

// ActionFunc runs a task against the runtime environment.
type ActionFunc func(ctx context.Context, args Args, env *application.Vaults) error

type Task struct {
	Name        string
	Description string
	// MaxArgs is how many positional arguments the task accepts. Most
	// tasks take none.
	MaxArgs int
	Action  ActionFunc
}

func (t Task) validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("%w: empty name", constants.ErrInvalidTask)
	case strings.ContainsAny(t.Name, " \t\n"):
		return fmt.Errorf("%w: name %q contains whitespace", constants.ErrInvalidTask, t.Name)
	case t.MaxArgs < 0:
		return fmt.Errorf("%w: task %s accepts a negative number of arguments", constants.ErrInvalidTask, t.Name)
	case t.Action == nil:
		return fmt.Errorf("%w: task %s has no action", constants.ErrInvalidTask, t.Name)
	}
	return nil
}

// Registry holds the tasks known to the CLI.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewRegistry() *Registry {
	return &Registry{tasks: map[string]Task{}}
}

// Register adds t. Names are unique.
func (r *Registry) Register(t Task) error {
	if err := t.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.Name]; ok {
		return fmt.Errorf("%w: %s", constants.ErrDuplicateTask, t.Name)
	}
	r.tasks[t.Name] = t
	return nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[name]
	return t, ok
}

// Tasks returns every registered task sorted by name.
func (r *Registry) Tasks() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run invokes the named task. The action's error is returned as is.
func (r *Registry) Run(ctx context.Context, name string, args Args, env *application.Vaults) error {
	t, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrTaskNotFound, name)
	}
	if len(args) > t.MaxArgs {
		return fmt.Errorf("%w: %s accepts at most %d, got %d", constants.ErrTooManyArgs, name, t.MaxArgs, len(args))
	}
	return t.Action(ctx, args, env)
}
