package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide operator logger. Init must run before anything
// writes to it; tests that exercise services without Init get a no-op logger.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

var encoderCfg = zapcore.EncoderConfig{
	MessageKey: "msg",
	NameKey:    "name",

	LevelKey:    "level",
	EncodeLevel: zapcore.CapitalLevelEncoder,

	CallerKey:    "caller",
	EncodeCaller: zapcore.ShortCallerEncoder,

	TimeKey:    "time",
	EncodeTime: zapcore.RFC3339TimeEncoder,
}

// Init installs a JSON logger writing to w (normally os.Stdout) and returns
// its flush function for deferring in main.
func Init(w io.Writer) func() {
	if w == nil {
		w = os.Stdout
	}
	zl := zap.New(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(zapcore.AddSync(w)),
			zapcore.InfoLevel,
		),
		zap.AddCaller(),
	)
	Log = zl.Sugar()
	return func() {
		_ = zl.Sync()
	}
}
