package executor

import (
	"codepad-server/internal/model"
	"sync/atomic"
)

// Metrics 运行计数
type Metrics struct {
	Submitted   uint64 `json:"submitted"`
	Rejected    uint64 `json:"rejected"`
	Completed   uint64 `json:"completed"`
	Failed      uint64 `json:"failed"`
	Unavailable uint64 `json:"unavailable"`
	Canceled    uint64 `json:"canceled"`
}

var (
	globalMetrics = &Metrics{}
)

func IncrementSubmitted() {
	atomic.AddUint64(&globalMetrics.Submitted, 1)
}

func IncrementRejected() {
	atomic.AddUint64(&globalMetrics.Rejected, 1)
}

func recordOutcome(o model.Outcome) {
	switch o {
	case model.OutcomeCompleted:
		atomic.AddUint64(&globalMetrics.Completed, 1)
	case model.OutcomeFailed:
		atomic.AddUint64(&globalMetrics.Failed, 1)
	case model.OutcomeUnavailable:
		atomic.AddUint64(&globalMetrics.Unavailable, 1)
	case model.OutcomeCanceled:
		atomic.AddUint64(&globalMetrics.Canceled, 1)
	}
}

func GetMetrics() Metrics {
	return Metrics{
		Submitted:   atomic.LoadUint64(&globalMetrics.Submitted),
		Rejected:    atomic.LoadUint64(&globalMetrics.Rejected),
		Completed:   atomic.LoadUint64(&globalMetrics.Completed),
		Failed:      atomic.LoadUint64(&globalMetrics.Failed),
		Unavailable: atomic.LoadUint64(&globalMetrics.Unavailable),
		Canceled:    atomic.LoadUint64(&globalMetrics.Canceled),
	}
}
