// audit/service.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mohitbeniwal/smartlearning/util"
)

var ErrQueryUnsupported = errors.New("audit repository cannot be queried")

type Service interface {
	Record(ctx context.Context, log AuditLog) error
	Query(ctx context.Context, from, to time.Time, studentID string) ([]AuditLog, error)
	// Attach records logins and cache refreshes published on bus.
	Attach(bus *util.EventBus)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, log AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	return s.repo.Record(ctx, log)
}

func (s *service) Query(ctx context.Context, from, to time.Time, studentID string) ([]AuditLog, error) {
	return s.repo.Query(ctx, from, to, studentID)
}

func (s *service) Attach(bus *util.EventBus) {
	bus.Subscribe(util.EventSessionCreated, s.handle(ActionLogin, true))
	bus.Subscribe(util.EventLoginFailed, s.handle(ActionLoginFailed, false))
	bus.Subscribe(util.EventCacheRefreshed, s.handle(ActionCacheRefresh, true))
	bus.Subscribe(util.EventCacheCorrupt, s.handle(ActionCacheCorrupt, false))
}

func (s *service) handle(action string, success bool) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		log := AuditLog{
			Timestamp: event.OccurredAt.UTC(),
			Action:    action,
			Success:   success,
		}
		switch p := event.Payload.(type) {
		case util.SessionEvent:
			log.StudentID = p.SubjectID
			log.ClientIP = p.ClientIP
		case util.CacheEvent:
			log.StudentID = p.SubjectID
			log.DataKind = p.DataKind
			log.Detail = p.Reason
		default:
			return fmt.Errorf("unexpected %s payload %T", event.Type, event.Payload)
		}
		return s.Record(ctx, log)
	}
}
