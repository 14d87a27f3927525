package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/handlers"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	callback *callbacktypes.Handler
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	accounts *service.AccountService,
	sessions *service.SessionRequestService,
	moderation *service.ModerationService,
	communities *service.CommunityService,
	search *service.SearchService,
	logger *zap.Logger,
) *BotController {
	states := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		accounts,
		sessions,
		moderation,
		communities,
		search,
		states,
		logger,
	)

	callbackHandler := &callbacktypes.Handler{
		Accounts:    accounts,
		Sessions:    sessions,
		Moderation:  moderation,
		Communities: communities,
		Search:      search,
		States:      states,
		Logger:      logger,
	}

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		callback: callbackHandler,
		logger:   logger,
	}
}

// RegisterHandlers registers command, dialog and callback handlers and sets
// the command menu.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/communities", bot.MatchTypeExact, c.handlers.HandleCommunities)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newcommunity", bot.MatchTypeExact, c.handlers.HandleNewCommunity)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypeExact, c.handlers.HandleSearch)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/compact", bot.MatchTypeExact, c.handlers.HandleCompact)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Mentor commands; /requests takes an optional service id argument.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/requests", bot.MatchTypePrefix, c.handlers.HandleRequests)

	// Admin commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reports", bot.MatchTypeExact, c.handlers.HandleReports)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/banned", bot.MatchTypeExact, c.handlers.HandleBanned)

	// Text messages complete dialogs with states
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Inline keyboard callbacks
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handleCallbackQuery)

	return c.setCommands(ctx)
}

func (c *BotController) handleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callbacks.Route(ctx, b, update.CallbackQuery, c.callback)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start the bot"},
		{Command: "help", Description: "❓ Command reference"},
		{Command: "login", Description: "🔑 Link your platform account"},
		{Command: "requests", Description: "📋 Session requests (mentor)"},
		{Command: "communities", Description: "👥 Your communities"},
		{Command: "newcommunity", Description: "➕ Create a community"},
		{Command: "search", Description: "🔍 Search users and communities"},
		{Command: "reports", Description: "🚨 Pending reports (admin)"},
		{Command: "banned", Description: "⛔ Banned users (admin)"},
		{Command: "compact", Description: "⏱ Toggle short durations"},
		{Command: "cancel", Description: "✖️ Abort the current dialog"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start runs the long-polling loop until the context is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
