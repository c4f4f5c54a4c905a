// Server entry point: loads config, wires stores, services and handlers, and
// runs the HTTP server until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"tailspend/internal/audit"
	auditHandler "tailspend/internal/audit/handler"
	"tailspend/internal/dashboard"
	dashboardHandler "tailspend/internal/dashboard/handler"
	httpapi "tailspend/internal/http"
	"tailspend/internal/nav"
	navHandler "tailspend/internal/nav/handler"
	"tailspend/internal/notification"
	notificationHandler "tailspend/internal/notification/handler"
	"tailspend/internal/order"
	orderHandler "tailspend/internal/order/handler"
	"tailspend/internal/platform/config"
	"tailspend/internal/platform/httpserver"
	"tailspend/internal/platform/logger"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	rfqHandler "tailspend/internal/rfq/handler"
	"tailspend/internal/search"
	searchHandler "tailspend/internal/search/handler"
	"tailspend/internal/seed"
	"tailspend/internal/session"
	sessionHandler "tailspend/internal/session/handler"
	"tailspend/internal/supplier"
	supplierHandler "tailspend/internal/supplier/handler"
	"tailspend/internal/task"
	taskHandler "tailspend/internal/task/handler"
	"tailspend/internal/workflow"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New()

	metrics := workflow.NewMetrics()
	authz := rbac.NewEngine(rbac.DefaultRules(), metrics)

	rfqStore := rfq.NewInMemoryStore()
	orderStore := order.NewInMemoryStore()
	supplierStore := supplier.NewInMemoryStore()
	taskStore := task.NewStore()
	notificationStore := notification.NewInMemoryStore()
	auditStore := audit.NewInMemoryStore()

	if cfg.Seed {
		seed.Load(seed.Stores{
			RFQs:          rfqStore,
			Orders:        orderStore,
			Suppliers:     supplierStore,
			Tasks:         taskStore,
			Notifications: notificationStore,
			Audit:         auditStore,
		})
		log.Info("demo fixtures loaded")
	}

	auditSvc := audit.NewService(auditStore, authz)
	notificationSvc := notification.NewService(notificationStore, authz)
	orderSvc := order.NewService(orderStore, authz, auditSvc, notificationSvc, metrics)
	rfqSvc := rfq.NewService(rfqStore, authz, orderSvc, auditSvc, notificationSvc, metrics)
	supplierSvc := supplier.NewService(supplierStore, authz, auditSvc)
	taskSvc := task.NewService(taskStore, authz)
	dashboardSvc := dashboard.NewService(rfqStore, orderStore, supplierStore, taskSvc, auditStore, authz)
	searchSvc := search.NewService(rfqStore, orderStore, supplierStore, authz)
	navSvc := nav.NewService(nav.NewInMemoryStore(), authz)
	sessionSvc := session.NewService(session.DefaultPersonas(), cfg.SessionSigningKey, cfg.SessionTTL, navSvc)

	router := httpapi.New(httpapi.Deps{
		Logger:       log,
		Validator:    sessionSvc,
		Session:      sessionHandler.New(sessionSvc, log),
		RFQ:          rfqHandler.New(rfqSvc, log),
		Order:        orderHandler.New(orderSvc, log),
		Supplier:     supplierHandler.New(supplierSvc, log),
		Task:         taskHandler.New(taskSvc, log),
		Notification: notificationHandler.New(notificationSvc, log),
		Audit:        auditHandler.New(auditSvc, log),
		Dashboard:    dashboardHandler.New(dashboardSvc, log),
		Search:       searchHandler.New(searchSvc, log),
		Nav:          navHandler.New(navSvc, log),
	})

	srv := httpserver.New(cfg.Addr, router, httpserver.Timeouts{
		ReadHeader: cfg.ReadHeaderTimeout,
		Write:      cfg.WriteTimeout,
		Idle:       cfg.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
