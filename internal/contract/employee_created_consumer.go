package contract

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	contracterrors "go-hrpos/internal/contract/errors"
	"go-hrpos/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EmployeeCreatedConsumer seeds an empty contract stub for every new
// employee. The stub keeps pay type and base rate unset on purpose: payroll
// must report the employee as missing terms, never pay a silent zero.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("contract.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee lifecycle event failed", zap.Error(err))
				continue
			}

			var event events.EmployeeCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode employee lifecycle event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee lifecycle event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.Create(ctx, event.CompanyID, CreateTermsRequest{
				EmployeeID:    event.EmployeeID,
				EffectiveDate: time.Now().UTC().Format("2006-01-02"),
			})
			if err != nil {
				// Duplicate event is safe to skip.
				if errors.Is(err, contracterrors.ErrEffectiveDateAlreadyExists) {
					c.logger.Warn("contract stub already exists for event, skipping",
						zap.String("employee_id", event.EmployeeID),
						zap.String("company_id", event.CompanyID),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit duplicate employee lifecycle event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("seed contract stub failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit employee lifecycle event failed", zap.Error(err))
				continue
			}

			c.logger.Info("contract stub seeded from employee lifecycle event",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}
