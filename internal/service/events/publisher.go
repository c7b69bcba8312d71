package events

import (
	"codepad-server/internal/conf"
	"codepad-server/internal/model"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Publisher 发布运行结果事件
type Publisher interface {
	PublishRunResult(ev model.RunEvent) error
	Close()
}

// NopPublisher 未配置 NATS 时使用
type NopPublisher struct{}

func (NopPublisher) PublishRunResult(model.RunEvent) error { return nil }
func (NopPublisher) Close()                                {}

type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNATSPublisher(nc *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{nc: nc, subject: subject}
}

// Connect 按配置连接 NATS，NatsURL 为空时返回 NopPublisher
func Connect(cfg conf.EventsConf) (Publisher, error) {
	if cfg.NatsURL == "" {
		return NopPublisher{}, nil
	}
	nc, err := nats.Connect(cfg.NatsURL, nats.Name("codepad-server"))
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"url": cfg.NatsURL, "subject": cfg.Subject}).Info("publishing run results to NATS")
	return NewNATSPublisher(nc, cfg.Subject), nil
}

func (p *NATSPublisher) PublishRunResult(ev model.RunEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		logrus.WithError(err).WithField("session", ev.SessionID).Warn("publish run result failed")
		return err
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}
