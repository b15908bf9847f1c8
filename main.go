package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/config"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/controllers"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/kanban"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/router"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/services"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: .env nao encontrado: %v", err)
	}
	utils.InitLogger()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha carregando configuracao: %v", err)
	}
	if cfg.Backend.BaseURL == "" {
		utils.ErrorLogger.Fatal("backend.base_url nao configurado")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// banco local de configuracao (unico estado durado do core)
	db, err := gorm.Open(sqlite.Open(cfg.Storage.SQLitePath), &gorm.Config{})
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha abrindo banco local: %v", err)
	}
	utils.InitDB(db)
	if err := db.AutoMigrate(&models.ColumnSetting{}); err != nil {
		utils.ErrorLogger.Fatalf("Falha no AutoMigrate: %v", err)
	}

	// montagem do core
	client := services.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)
	store := services.NewOrderStore(client, cfg.Dashboard.PollInterval)
	engine := services.NewTransitionEngine(store, client, cfg.Backend.RequestTimeout)
	reconciler := services.NewDragReconciler(store, engine)
	settings := services.NewSettingsService(db)

	hub := kanban.NewHub()
	gate := services.NewSessionGate()
	alerts := services.NewAlertScheduler(
		kanban.NewHubAudioPlayer(hub),
		kanban.NewHubNotifier(hub),
		kanban.NewHubSpeaker(hub),
		gate,
		cfg.Dashboard.RingInterval,
	)

	hub.OnInteraction = gate.Unlock
	hub.OnPermission = alerts.SetPermission

	// cada snapshot aplicado alimenta campainha e dashboards
	store.Subscribe(alerts.OnOrders)
	store.Subscribe(func(orders []models.Order) {
		hub.BroadcastOrders(orders)
		enabled, err := settings.EnabledSet(store.CompanyID())
		if err != nil {
			utils.ErrorLogger.Printf("erro lendo colunas: %v", err)
			return
		}
		hub.BroadcastKanban(kanban.BuildBuckets(orders, kanban.ViewConfig{Enabled: enabled}))
	})
	settings.Watch(hub.BroadcastSettings)
	engine.OnStatusChange = hub.BroadcastStatusChange

	dashCtrl := controllers.NewDashboardController(store, engine, reconciler, alerts, settings, hub, gate)
	wsCtrl := controllers.NewWSController(hub)

	r := router.SetupRouter(router.Deps{Dashboard: dashCtrl, WS: wsCtrl})

	// empresa fixa via configuracao: ja inicia o polling no boot
	if cfg.Dashboard.CompanyID != "" {
		store.Start(cfg.Dashboard.CompanyID)
		alerts.Start()
		defer store.Stop()
		defer alerts.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = fmt.Sprintf("%d", cfg.Server.Port)
	}
	utils.InfoLogger.Printf("Dashboard ouvindo na porta %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
