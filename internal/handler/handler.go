package handler

import (
	"context"
	"sync"

	"linguabird/internal/domain"
	"linguabird/internal/service"
	"linguabird/internal/settings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// messenger is the part of the bot API used outside of the update context
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// Deps are the services the handler talks to. History may be nil.
type Deps struct {
	Auth       *service.AuthService
	Render     *service.RenderService
	History    *service.HistoryService
	Settings   *settings.Store
	Directions *domain.Directions
	Messages   Messages
}

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	api        messenger
	auth       *service.AuthService
	render     *service.RenderService
	history    *service.HistoryService
	settings   *settings.Store
	directions *domain.Directions
	msg        Messages
	logger     *zap.Logger

	// ctx is cancelled on shutdown and aborts in-flight renders
	ctx context.Context

	// Serializes history callbacks per user
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(ctx context.Context, bot *tele.Bot, deps Deps, logger *zap.Logger) *Handler {
	h := newHandler(ctx, bot, deps, logger)
	h.bot = bot
	return h
}

func newHandler(ctx context.Context, api messenger, deps Deps, logger *zap.Logger) *Handler {
	return &Handler{
		api:           api,
		auth:          deps.Auth,
		render:        deps.Render,
		history:       deps.History,
		settings:      deps.Settings,
		directions:    deps.Directions,
		msg:           deps.Messages,
		logger:        logger,
		ctx:           ctx,
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/example", h.handleExample)
	h.bot.Handle("/settings", h.handleSettings)
	h.bot.Handle("/history", h.handleViewDays)
	h.bot.Handle("/random", h.handleRandomPair)

	// Word lists
	h.bot.Handle(tele.OnText, h.handleText)

	// All inline buttons are routed by their data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// userLock returns the per-user callback lock
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, ok := h.callbackLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// profileFor returns the profile of the user's current direction,
// falling back to the default one when it is no longer registered.
func (h *Handler) profileFor(s domain.Settings) domain.DirectionProfile {
	if p, err := h.directions.Lookup(s.Direction); err == nil {
		return p
	}
	p, _ := h.directions.Lookup(domain.DefaultSettings().Direction)
	return p
}
