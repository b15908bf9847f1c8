package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/kanban"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/services"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

var ErrNoCompany = errors.New("empresa ativa nao informada")

// DashboardController superficie HTTP do dashboard de pedidos.
type DashboardController struct {
	Store      *services.OrderStore
	Engine     *services.TransitionEngine
	Reconciler *services.DragReconciler
	Alerts     *services.AlertScheduler
	Settings   *services.SettingsService
	Hub        *kanban.Hub
	Gate       services.InteractionGate
}

func NewDashboardController(
	store *services.OrderStore,
	engine *services.TransitionEngine,
	reconciler *services.DragReconciler,
	alerts *services.AlertScheduler,
	settings *services.SettingsService,
	hub *kanban.Hub,
	gate services.InteractionGate,
) *DashboardController {
	return &DashboardController{
		Store:      store,
		Engine:     engine,
		Reconciler: reconciler,
		Alerts:     alerts,
		Settings:   settings,
		Hub:        hub,
		Gate:       gate,
	}
}

func (dc *DashboardController) companyID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("company_id"); ok {
		if id, _ := v.(string); id != "" {
			return id, true
		}
	}
	utils.RespondError(c, http.StatusUnauthorized, ErrNoCompany)
	return "", false
}

// StartDashboard troca/inicia a sessao da empresa ativa: derruba os
// timers da sessao anterior e inicia polling + campainha de novo.
func (dc *DashboardController) StartDashboard(c *gin.Context) {
	companyID, ok := dc.companyID(c)
	if !ok {
		return
	}

	dc.Alerts.Stop()
	dc.Store.Start(companyID)
	dc.Alerts.Start()

	utils.RespondJSON(c, http.StatusOK, "Dashboard iniciado", gin.H{
		"company_id": companyID,
	})
}

// StopDashboard teardown explicito (navegacao, troca de empresa).
func (dc *DashboardController) StopDashboard(c *gin.Context) {
	dc.Store.Stop()
	dc.Alerts.Stop()
	utils.RespondJSON(c, http.StatusOK, "Dashboard parado", nil)
}

// GetOrders snapshot canonico + flags de carregamento/erro.
func (dc *DashboardController) GetOrders(c *gin.Context) {
	var fetchErr string
	if err := dc.Store.LastError(); err != nil {
		fetchErr = err.Error()
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de pedidos", gin.H{
		"orders":      dc.Store.Snapshot(),
		"loading":     dc.Store.Loading(),
		"fetch_error": fetchErr,
	})
}

// RefreshOrders fetch fora do intervalo, sem segundo ticker.
func (dc *DashboardController) RefreshOrders(c *gin.Context) {
	dc.Store.RefreshNow()
	utils.RespondJSON(c, http.StatusAccepted, "Atualizacao solicitada", nil)
}

// UpdateOrderStatus transicao disparada por botao no card.
func (dc *DashboardController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order_id invalido"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next := models.NormalizeStatus(body.Status)
	if err := dc.Engine.Transition(c.Request.Context(), uint(orderID), next); err != nil {
		// rollback ja aplicado; toast de erro para o atendente
		utils.RespondError(c, http.StatusBadGateway,
			fmt.Errorf("nao foi possivel atualizar o pedido, tente novamente"))
		return
	}

	order, _ := dc.Store.Get(uint(orderID))
	utils.RespondJSON(c, http.StatusOK, "Status atualizado", order)
}

// DragOrder gesto de drag-and-drop reportado pelo dashboard.
func (dc *DashboardController) DragOrder(c *gin.Context) {
	var ev models.DragEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.Reconciler.Reconcile(c.Request.Context(), ev); err != nil {
		utils.RespondError(c, http.StatusBadGateway,
			fmt.Errorf("nao foi possivel mover o pedido, tente novamente"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Gesto processado", nil)
}

// GetKanban colunas derivadas prontas para renderizar.
func (dc *DashboardController) GetKanban(c *gin.Context) {
	companyID, ok := dc.companyID(c)
	if !ok {
		return
	}

	enabled, err := dc.Settings.EnabledSet(companyID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	buckets := kanban.BuildBuckets(dc.Store.Snapshot(), kanban.ViewConfig{
		Enabled:         enabled,
		DeliveredWindow: kanban.ParseDeliveredWindow(c.Query("delivered_window")),
	})
	utils.RespondJSON(c, http.StatusOK, "Kanban", buckets)
}

// GetColumns configuracao de colunas da empresa.
func (dc *DashboardController) GetColumns(c *gin.Context) {
	companyID, ok := dc.companyID(c)
	if !ok {
		return
	}

	settings, err := dc.Settings.GetColumns(companyID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Colunas", settings)
}

// PutColumns grava colunas habilitadas; watchers e hub propagam.
func (dc *DashboardController) PutColumns(c *gin.Context) {
	companyID, ok := dc.companyID(c)
	if !ok {
		return
	}

	var body struct {
		Columns []struct {
			Status  string `json:"status" binding:"required"`
			Enabled bool   `json:"enabled"`
		} `json:"columns" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	for _, col := range body.Columns {
		st := models.NormalizeStatus(col.Status)
		if err := dc.Settings.SetColumn(companyID, st, col.Enabled); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	settings, err := dc.Settings.GetColumns(companyID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Colunas atualizadas", settings)
}

// GetCampainha estado publico da campainha.
func (dc *DashboardController) GetCampainha(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Campainha", dc.Alerts.State())
}

// StopCampainha silencia na hora; a contagem segue rastreada.
func (dc *DashboardController) StopCampainha(c *gin.Context) {
	dc.Alerts.StopRinging()
	dc.Hub.Broadcast(kanban.Message{Event: kanban.EventCampainhaStop, Data: nil})
	utils.RespondJSON(c, http.StatusOK, "Campainha silenciada", dc.Alerts.State())
}

// RegisterInteraction primeiro input real do usuario na sessao;
// libera playback de audio.
func (dc *DashboardController) RegisterInteraction(c *gin.Context) {
	dc.Gate.Unlock()
	utils.RespondJSON(c, http.StatusOK, "Interacao registrada", gin.H{
		"audio_unlocked": true,
	})
}

// SetPermission permissao de notificacao reportada pelo cliente.
func (dc *DashboardController) SetPermission(c *gin.Context) {
	var body struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dc.Alerts.SetPermission(models.NotificationPermission(body.State))
	utils.RespondJSON(c, http.StatusOK, "Permissao registrada", dc.Alerts.State())
}
