package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/aws"
	"github.com/molliqajbedrush-arch/enerbewwer/db"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Deps   *internal.Deps
	Router *gin.Engine
}

// New builds every component from the loaded config and the router serving
// them
func New(ctx context.Context) (*API, error) {
	if err := makeLogger(viper.GetString("app.log_level")); err != nil {
		return nil, err
	}

	d, err := newDeps(ctx)
	if err != nil {
		return nil, err
	}

	router := NewRouter(ctx, d, RouterOptions{
		Origins:   splitList(viper.GetString("host.cors")),
		RateLimit: viper.GetInt("security.rate_limit"),
	})

	return &API{Deps: d, Router: router}, nil
}

func newDeps(ctx context.Context) (d *internal.Deps, err error) {
	conn, err := db.New(db.Options{
		Driver: viper.GetString("database.driver"),
		URL:    viper.GetString("database.url"),
		Name:   viper.GetString("database.name"),
		Debug:  viper.GetString("app.log_level") == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	defer func() {
		if err != nil {
			db.Close(conn)
		}
	}()

	tokens, err := security.NewTokens(viper.GetString("jwt.secret"))
	if err != nil {
		return nil, err
	}

	llm, err := service.NewLLM(ctx, service.LLMOptions{
		Provider: viper.GetString("llm.provider"),
		APIKey:   viper.GetString("llm.api_key"),
		Model:    viper.GetString("llm.model"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model, %w", err)
	}

	archive, err := newArchive(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := service.NewAccounts(conn, security.New(), tokens)
	if err != nil {
		return nil, err
	}

	return &internal.Deps{
		DB:           conn,
		Accounts:     accounts,
		Applications: service.NewApplications(conn),
		Scraper:      service.NewJobScraper(viper.GetDuration("scraper.timeout")),
		Resumes:      service.NewResumeExtractor(viper.GetDuration("resume.timeout")),
		Letters: service.NewLetterGenerator(llm,
			service.WithLLMTimeout(viper.GetDuration("llm.timeout")),
			service.WithLLMRetries(viper.GetInt("llm.retries")),
		),
		Renderer:      service.NewDocumentRenderer(),
		Archive:       archive,
		MaxUploadSize: viper.GetInt64("upload.max_size") << 20,
	}, nil
}

func newArchive(ctx context.Context) (service.Archive, error) {
	switch viper.GetString("storage.type") {
	case "local":
		return service.NewLocalArchive(viper.GetString("storage.local_path")), nil
	case "s3":
		s3, err := aws.NewS3(ctx, aws.S3Options{
			Region:          viper.GetString("aws.region"),
			Bucket:          viper.GetString("aws.bucket"),
			AccessKeyID:     viper.GetString("aws.access_key_id"),
			SecretAccessKey: viper.GetString("aws.secret_access_key"),
			Endpoint:        viper.GetString("aws.endpoint"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		return service.NewS3Archive(s3), nil
	default:
		return nil, nil
	}
}

func makeLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level, %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger, %w", err)
	}

	zap.ReplaceGlobals(log)
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
