package application

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/encodergroup/portal-go/internal/domain/audit"
	"github.com/encodergroup/portal-go/internal/repository"
)

type AuditService struct {
	entries repository.AuditRepository
}

func NewAuditService(entries repository.AuditRepository) *AuditService {
	return &AuditService{entries: entries}
}

// Record writes an audit entry in the background so request handling never
// waits on the trail.
func (s *AuditService) Record(actorID, action, resource string, detail map[string]interface{}) {
	e := &audit.Entry{
		ActorID:  actorID,
		Action:   action,
		Resource: resource,
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			log.WithError(err).WithField("action", action).Error("Failed to encode audit detail")
		} else {
			e.Detail = raw
		}
	}

	go func() {
		if err := s.entries.Create(e); err != nil {
			log.WithError(err).WithField("action", action).Error("Failed to write audit entry")
		}
	}()
}

func (s *AuditService) List(skip, limit int) ([]audit.Entry, int64, error) {
	return s.entries.List(skip, limit)
}
