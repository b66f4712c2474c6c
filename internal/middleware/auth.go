package middleware

import (
	"strings"

	"linguabird/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "Произошла ошибка. Попробуйте позже."
	msgAskPassword   = "🔒 Бот закрыт паролем. Отправьте пароль, чтобы продолжить:"
	msgWrongPassword = "❌ Неверный пароль"
	msgAccessGranted = "✅ Доступ разрешён!\n\nОтправьте /start, чтобы начать."
)

// AuthMiddleware lets authorized users through. The first plain text
// message of anyone else is checked as the bot password.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !authService.Enabled() {
				return next(c)
			}

			sender := c.Sender()
			if sender == nil {
				return nil
			}
			userID := sender.ID

			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return reply(c, msgInternalError)
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reply(c, msgInternalError)
			}
			if authorized {
				return next(c)
			}

			text := strings.TrimSpace(c.Text())
			if c.Callback() != nil || text == "" || strings.HasPrefix(text, "/") {
				return reply(c, msgAskPassword)
			}

			ok, err := authService.TryAuthorize(userID, text)
			if err != nil {
				logger.Error("Failed to authorize user", zap.Error(err))
				return reply(c, msgInternalError)
			}
			if !ok {
				logger.Info("Wrong password", zap.Int64("user_id", userID))
				return reply(c, msgWrongPassword)
			}

			logger.Info("User authorized", zap.Int64("user_id", userID))
			return reply(c, msgAccessGranted)
		}
	}
}

func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
