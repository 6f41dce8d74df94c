package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/dnsdeck/internal/logging"
	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/resolvex"
)

// ErrEmptyName is returned by Create when the trimmed name is empty.
var ErrEmptyName = errors.New("domain name is required")

// ErrDeclined is returned by Remove when the operator declines.
var ErrDeclined = errors.New("removal declined")

// Refresher triggers a sync cycle after a successful mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Pusher accepts user-facing alerts.
type Pusher interface {
	Push(kind notify.Kind, message string) int64
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Service runs create, update and remove against the API. A success pushes a
// success alert and triggers one sync; a failure pushes a failure alert and
// leaves the snapshot alone. Nothing is retried.
type Service struct {
	Client  resolvex.Mutator
	Sync    Refresher
	Alerts  Pusher
	Confirm Confirmer
	Logger  *slog.Logger
}

// Create adds name.
func (s *Service) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	err := s.Client.Create(ctx, name)
	return s.finish(ctx, "create", err, fmt.Sprintf("created %s", name))
}

// Update renames oldName to newName. An empty or unchanged replacement is a
// no-op.
func (s *Service) Update(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return nil
	}
	err := s.Client.Update(ctx, oldName, newName)
	return s.finish(ctx, "update", err, fmt.Sprintf("renamed %s to %s", oldName, newName))
}

// Remove deletes name after the operator confirms. A declined prompt returns
// ErrDeclined without calling the API.
func (s *Service) Remove(ctx context.Context, name string) error {
	if s.Confirm != nil {
		ok, err := s.Confirm.Confirm(ctx, fmt.Sprintf("Delete %s?", name))
		if err != nil {
			return fmt.Errorf("confirm removal: %w", err)
		}
		if !ok {
			return ErrDeclined
		}
	}
	err := s.Client.Delete(ctx, name)
	return s.finish(ctx, "delete", err, fmt.Sprintf("deleted %s", name))
}

func (s *Service) finish(ctx context.Context, op string, err error, success string) error {
	log := s.logger().With(slog.String("op", op))
	if err != nil {
		log.Warn("mutation failed", slog.String("error", err.Error()))
		s.push(notify.KindFailure, resolvex.Message(err))
		return err
	}
	log.Info("mutation succeeded", slog.String("result", success))
	s.push(notify.KindSuccess, success)
	if s.Sync != nil {
		// The sync reports its own failures.
		_ = s.Sync.Refresh(ctx)
	}
	return nil
}

func (s *Service) push(kind notify.Kind, msg string) {
	if s.Alerts != nil {
		s.Alerts.Push(kind, msg)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Discard()
}
