package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvLogLevel はログレベルを指定する環境変数名
const EnvLogLevel = "UFOPS_LOG"

var traceEnabled bool

// InitLogger は UFOPS_LOG 環境変数からログレベルを決定し、apex/log を初期化する
// 未指定の場合は error レベル（通常の実行ではデバッグ出力なし）
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv(EnvLogLevel))
	if envLevel == "" {
		envLevel = "error"
	}
	traceEnabled = envLevel == "trace"

	var level log.Level
	switch envLevel {
	case "trace", "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "fatal":
		level = log.FatalLevel
	default:
		level = log.ErrorLevel
	}
	log.SetHandler(&Handler{Writer: os.Stderr})
	log.SetLevel(level)
}

// Handler は1行1エントリの簡易フォーマットでログを書き出す
type Handler struct {
	Writer io.Writer
}

// HandleLog は log.Handler インターフェースの実装
func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	message := e.Message
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = strings.TrimPrefix(message, "TRACE: ")
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields []string
	for _, name := range e.Fields.Names() {
		fields = append(fields, fmt.Sprintf("%s=%v", name, e.Fields.Get(name)))
	}
	if len(fields) > 0 {
		message += " " + strings.Join(fields, " ")
	}

	_, err := fmt.Fprintf(h.Writer, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return err
}

// Debugf はデバッグログを出力する
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Tracef は Debug より詳細なログを出力する（UFOPS_LOG=trace のときのみ）
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// WithFields はフィールド付きのエントリを返す
func WithFields(fields log.Fields) *log.Entry {
	return log.WithFields(fields)
}
