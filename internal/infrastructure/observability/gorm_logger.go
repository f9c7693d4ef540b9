package observability

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewGormLogger routes ORM output through zap. With statements disabled only
// errors and slow queries are reported.
func NewGormLogger(logger *zap.Logger, statements bool) gormlogger.Interface {
	gl := zapgorm2.New(logger.Named("gorm"))
	gl.SlowThreshold = slowQueryThreshold
	gl.IgnoreRecordNotFoundError = true
	gl.SkipCallerLookup = true

	if statements {
		return gl.LogMode(gormlogger.Info)
	}
	return gl.LogMode(gormlogger.Warn)
}
