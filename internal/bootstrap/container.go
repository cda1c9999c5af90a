package bootstrap

import (
	"crypto/tls"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/courseway-io/Courseway/internal/config"
	"github.com/courseway-io/Courseway/internal/infra/cache"
	"github.com/courseway-io/Courseway/internal/infra/db"
	"github.com/courseway-io/Courseway/internal/infra/logger"
	mq "github.com/courseway-io/Courseway/internal/infra/queue"
	"github.com/courseway-io/Courseway/internal/modules/handler"
	"github.com/courseway-io/Courseway/internal/modules/repo"
	"github.com/courseway-io/Courseway/internal/modules/service"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
	"github.com/courseway-io/Courseway/internal/pkg/schedule"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		clock.SetLogger(log)
		return log, nil
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return db.New(cfg)
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)

		dialFn := func() (*amqp.Connection, error) {
			useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")

			if useTLS {
				tlsConfig := &tls.Config{
					MinVersion: tls.VersionTLS12,
				}
				url := cfg.RabbitMQ.URL
				if strings.HasPrefix(url, "amqp://") {
					url = strings.Replace(url, "amqp://", "amqps://", 1)
				}
				return amqp.DialTLS(url, tlsConfig)
			}

			return amqp.Dial(cfg.RabbitMQ.URL)
		}

		return dialFn, nil
	})

	// RabbitMQ Publisher; nil when messaging is disabled
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return nil, nil
		}

		log := do.MustInvoke[*zap.Logger](i)
		dialFn := do.MustInvoke[mq.DialFunc](i)
		conn, err := dialFn()
		if err != nil {
			return nil, err
		}

		pub, err := mq.NewPublisher(conn, log, cfg.App.Name)
		if err != nil {
			return nil, err
		}
		if err := pub.DeclareExchange(cfg.RabbitMQ.ExchangeName.CourseEvents); err != nil {
			return nil, err
		}
		return pub, nil
	})

	// Catalog and slot registry
	do.Provide(inj, func(i *do.Injector) (repo.Catalog, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return repo.NewCatalog(cfg.Catalog.Path, log)
	})
	do.Provide(inj, func(i *do.Injector) (*schedule.Registry, error) {
		cat := do.MustInvoke[repo.Catalog](i)
		return schedule.NewRegistry(cat.ScheduleTables()), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.CourseRepo, error) {
		return repo.NewCourseRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PreferenceRepo, error) {
		return repo.NewPreferenceRepo(do.MustInvoke[*redis.Client](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.CatalogService, error) {
		return service.NewCatalogService(
			do.MustInvoke[repo.Catalog](i),
			do.MustInvoke[*schedule.Registry](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CourseService, error) {
		return service.NewCourseService(
			do.MustInvoke[repo.CourseRepo](i),
			do.MustInvoke[repo.Catalog](i),
			do.MustInvoke[*schedule.Registry](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PreferenceService, error) {
		return service.NewPreferenceService(
			do.MustInvoke[repo.PreferenceRepo](i),
			do.MustInvoke[repo.Catalog](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.CatalogHandler, error) {
		return handler.NewCatalogHandler(do.MustInvoke[service.CatalogService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CourseHandler, error) {
		return handler.NewCourseHandler(do.MustInvoke[service.CourseService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PreferenceHandler, error) {
		return handler.NewPreferenceHandler(do.MustInvoke[service.PreferenceService](i)), nil
	})
	return inj
}
