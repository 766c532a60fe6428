package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"orderapi/internal/config"
	"orderapi/internal/handler"
	"orderapi/internal/infra/db"
	infraRepo "orderapi/internal/infra/repository"
	"orderapi/internal/server"
	"orderapi/internal/usecase"
	"orderapi/pkg/closer"
	"orderapi/pkg/logger"

	"gorm.io/gorm"
)

// NewServer は repository → usecase → handler を組み立ててサーバーを返す。
func NewServer(cfg config.Config, log logger.Logger, gormDB *gorm.DB) *server.Server {
	//Repository（GORM実装）
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	clientRepo := infraRepo.NewClientGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	itemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	clientUC := usecase.NewClientUsecase(clientRepo, orderRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, itemRepo, auditRepo)
	itemUC := usecase.NewOrderItemUsecase(txm, itemRepo)

	//Handler
	errs := handler.NewErrorWriter(log, cfg.ExposeErrors)
	h := server.Handlers{
		Category:  handler.NewCategoryHandler(categoryUC, errs),
		Product:   handler.NewProductHandler(productUC, errs),
		Client:    handler.NewClientHandler(clientUC, errs),
		Order:     handler.NewOrderHandler(orderUC, errs),
		OrderItem: handler.NewOrderItemHandler(itemUC, errs),
	}

	return server.New(cfg, log, h, func(ctx context.Context) error {
		return db.Ping(ctx, gormDB)
	})
}

// Run connects to the database, serves HTTP and shuts down on SIGINT/SIGTERM.
func Run(cfg config.Config, log logger.Logger) error {
	gormDB, err := db.Connect(cfg.DB, log, cfg.Log.Level == "debug")
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	cl := closer.New(0)
	cl.Add(func(context.Context) error {
		log.Infof("closing db pool")
		return db.Close(gormDB)
	})

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			if cerr := cl.Close(context.Background()); cerr != nil {
				log.Errorf(cerr, "close after migrate failure")
			}
			return err
		}
		log.Infof("auto migrate done (%s)", cfg.DB.Driver)
	}

	srv := NewServer(cfg, log, gormDB)
	cl.Add(func(ctx context.Context) error {
		log.Infof("stopping HTTP server")
		return srv.Shutdown(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// === シグナル待ち ===
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var appErr error
	select {
	case appErr = <-errCh:
		if appErr != nil {
			log.Errorf(appErr, "HTTP server fatal error")
		}
	case sig := <-stop:
		log.Infof("received %s, stopping gracefully...", sig)
	}

	// === Graceful shutdown ===
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := cl.Close(ctx); err != nil {
		log.Errorf(err, "shutdown")
		if appErr == nil {
			appErr = err
		}
	} else {
		log.Infof("shutdown complete")
	}
	return appErr
}

// Migrate runs AutoMigrate for every table and exits.
func Migrate(cfg config.Config, log logger.Logger) error {
	gormDB, err := db.Connect(cfg.DB, log, cfg.Log.Level == "debug")
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Infof("migrated %d tables (%s)", len(db.Models()), cfg.DB.Driver)
	return nil
}
