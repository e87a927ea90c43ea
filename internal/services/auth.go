package services

import (
	"context"
	"errors"
	"fmt"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/repositories"
	"hospital-meals/pkg/config"
	apperrors "hospital-meals/pkg/errors"
	"hospital-meals/pkg/service"
	"hospital-meals/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, userID uint64) (*dto.AuthResponseDTO, error)
	Verify(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	Logout(ctx context.Context, userID uint64) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	audit      AuditLoggerInterface
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	audit AuditLoggerInterface,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		audit:      audit,
		cfg:        cfg,
		logger:     logger,
	}
}

// Login проверяет пароль и портал входа. После MaxLoginAttempts неудачных
// попыток подряд вход блокируется на LockoutDuration.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Login: ошибка поиска пользователя", zap.Error(err))
		}
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Role.AllowedInPortal(payload.Portal) {
		s.logger.Warn("Login: роль не допускается в портал",
			zap.String("username", user.Username),
			zap.String("role", string(user.Role)),
			zap.String("portal", payload.Portal),
		)
		return nil, apperrors.ErrWrongPortal
	}
	s.resetLoginAttempts(ctx, user.ID)

	resp, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityAuth, user.ID, "login",
		map[string]interface{}{"portal": payload.Portal}, user.ID)
	s.logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))
	return resp, nil
}

// Refresh выдаёт новый токен по действующему, перечитав пользователя из БД.
func (s *AuthService) Refresh(ctx context.Context, userID uint64) (*dto.AuthResponseDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) Verify(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := dto.NewUserDTO(user)
	return &result, nil
}

// Logout только фиксирует выход в журнале: токены не хранятся на сервере.
func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityAuth, userID, "logout", nil, userID)
	return nil
}

func (s *AuthService) findUser(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Пользователь из токена не найден", zap.Uint64("userID", userID), zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) issueToken(user *entities.User) (*dto.AuthResponseDTO, error) {
	token, err := s.jwtService.GenerateToken(service.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		FullName: user.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токен: %w", err)
	}
	return &dto.AuthResponseDTO{
		Token:     token,
		ExpiresIn: int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:      dto.NewUserDTO(user),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	// ключ есть - вход заблокирован
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(userID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	key := attemptsKey(userID)
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey(userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, key)
		s.logger.Warn("Вход заблокирован после неудачных попыток", zap.Uint64("userID", userID), zap.Int64("attempts", attempts))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	_ = s.cacheRepo.Del(ctx, attemptsKey(userID), lockoutKey(userID))
}

func attemptsKey(userID uint64) string { return fmt.Sprintf("login_attempts:%d", userID) }

func lockoutKey(userID uint64) string { return fmt.Sprintf("lockout:%d", userID) }
