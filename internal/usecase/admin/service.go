package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/umeshkhanal/rumooz/internal/config"
	domainAdmin "github.com/umeshkhanal/rumooz/internal/domain/admin"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/mail"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/throttle"
	"github.com/umeshkhanal/rumooz/internal/logger"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/token"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"go.uber.org/zap"
)

// Service implements the admin authentication flow and account changes.
type Service struct {
	repo     domainAdmin.Repository
	tokens   *token.Manager
	notifier mail.Notifier
	limiter  throttle.Limiter

	codeTTL      time.Duration
	maxAttempts  int
	now          func() time.Time
	generateCode func() (string, error)
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.generateCode = gen }
}

// WithLimiter throttles SendCode per account. Without it codes are never throttled.
func WithLimiter(l throttle.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// NewService creates a new admin service
func NewService(
	repo domainAdmin.Repository,
	tokens *token.Manager,
	notifier mail.Notifier,
	otpCfg config.OTPConfig,
	opts ...Option,
) *Service {
	s := &Service{
		repo:         repo,
		tokens:       tokens,
		notifier:     notifier,
		codeTTL:      otpCfg.TTL(),
		maxAttempts:  otpCfg.MaxAttempts,
		now:          time.Now,
		generateCode: utils.GenerateOTP,
	}
	if s.codeTTL <= 0 {
		s.codeTTL = 10 * time.Minute
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = 5
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and stores a fresh verification code. It never returns a token;
// the caller has to request the code by email and confirm it.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Username = utils.SanitizeString(req.Username)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAccountNotFound) {
			logger.Warn("Login attempt with unknown username",
				zap.String("username", req.Username),
				zap.String("event", "admin_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if !utils.CheckPassword(account.PasswordHashed, req.Password) {
		logger.Warn("Failed login attempt",
			zap.Uint("admin_id", account.ID),
			zap.String("event", "invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.issueCode(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Admin credentials accepted, verification required",
		zap.Uint("admin_id", account.ID),
		zap.String("event", "admin_login_code_issued"),
	)

	return &LoginResponse{Email: account.Email}, nil
}

// SendCode regenerates the verification code of the account owning email and mails it.
// Any code issued before is no longer accepted.
func (s *Service) SendCode(ctx context.Context, req *SendCodeRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.getByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, "send-code:"+strconv.FormatUint(uint64(account.ID), 10))
		if err != nil {
			// a broken throttle backend must not lock the owner out
			logger.Error("Code throttle unavailable", zap.Error(err))
		} else if !allowed {
			logger.Warn("Verification code requests throttled",
				zap.Uint("admin_id", account.ID),
				zap.String("event", "send_code_throttled"),
			)
			return appErrors.ErrTooManyRequests
		}
	}

	if err := s.issueCode(ctx, account); err != nil {
		return err
	}

	msg := mail.VerificationCode(account.Email, account.Username, *account.VerificationCode, s.codeTTL)
	if err := s.notifier.Send(ctx, msg); err != nil {
		logger.Error("Failed to send verification code",
			zap.Uint("admin_id", account.ID),
			zap.String("event", "send_code_failed"),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", appErrors.ErrNotificationFailed, err)
	}

	logger.Info("Verification code sent",
		zap.Uint("admin_id", account.ID),
		zap.String("event", "send_code"),
	)
	return nil
}

// ConfirmCode exchanges a valid, unexpired code for a session token.
// A code is accepted up to and including its expiry instant.
func (s *Service) ConfirmCode(ctx context.Context, req *ConfirmCodeRequest) (*TokenResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	req.Code = utils.SanitizeString(req.Code)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.getByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !account.CodeMatches(req.Code) {
		s.recordFailedAttempt(ctx, account)
		return nil, appErrors.ErrInvalidCode
	}
	if account.CodeExpired(s.now()) {
		return nil, appErrors.ErrCodeExpired
	}

	account.ClearVerificationCode()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to clear verification code: %w", err)
	}

	resp, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin verified",
		zap.Uint("admin_id", account.ID),
		zap.String("event", "admin_login"),
	)
	return resp, nil
}

func (s *Service) ChangeEmail(ctx context.Context, accountID uint, req *ChangeEmailRequest) (*TokenResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.verifyChange(ctx, accountID, req.OTP, req.Password)
	if err != nil {
		return nil, err
	}

	if req.Email != account.Email {
		existing, err := s.repo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domainAdmin.ErrAccountNotFound) {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil && existing.ID != account.ID {
			return nil, appErrors.ErrEmailTaken
		}
	}

	account.Email = req.Email
	return s.commitChange(ctx, account, "admin_email_changed")
}

func (s *Service) ChangeContactMail(ctx context.Context, accountID uint, req *ChangeContactMailRequest) (*TokenResponse, error) {
	req.ContactMail = utils.SanitizeEmail(req.ContactMail)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.verifyChange(ctx, accountID, req.OTP, req.Password)
	if err != nil {
		return nil, err
	}

	contactMail := req.ContactMail
	account.ContactMail = &contactMail
	return s.commitChange(ctx, account, "admin_contact_mail_changed")
}

func (s *Service) ChangePassword(ctx context.Context, accountID uint, req *ChangePasswordRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.verifyChange(ctx, accountID, req.OTP, req.CurrentPassword)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account.PasswordHashed = hashed
	return s.commitChange(ctx, account, "admin_password_changed")
}

// Authenticate resolves a bearer token. Tokens issued before the latest credential change
// are rejected.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*Identity, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAccountNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if account.TokenGeneration != claims.Generation {
		logger.Warn("Rejected token from an older credential generation",
			zap.Uint("admin_id", account.ID),
			zap.String("event", "stale_token"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	return &Identity{AccountID: account.ID, Username: account.Username}, nil
}

func (s *Service) GetProfile(ctx context.Context, accountID uint) (*ProfileResponse, error) {
	account, err := s.getByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(account), nil
}

// EnsureDefaultAccount seeds the admin table on first boot and returns the account that owns
// the site, i.e. the one receiving lead notifications.
func (s *Service) EnsureDefaultAccount(ctx context.Context, seed Seed) (*domainAdmin.Account, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return s.repo.First(ctx)
	}

	account, err := s.newAccount(seed)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Default admin account created",
		zap.Uint("admin_id", account.ID),
		zap.String("username", account.Username),
		zap.String("event", "admin_seeded"),
	)
	return account, nil
}

// UpsertAccount creates the account named by seed or resets its email and password.
// Resetting invalidates every outstanding token.
func (s *Service) UpsertAccount(ctx context.Context, seed Seed) (*domainAdmin.Account, bool, error) {
	account, err := s.repo.GetByUsername(ctx, seed.Username)
	if err != nil && !errors.Is(err, domainAdmin.ErrAccountNotFound) {
		return nil, false, fmt.Errorf("failed to get admin: %w", err)
	}

	if account == nil {
		account, err = s.newAccount(seed)
		if err != nil {
			return nil, false, err
		}
		if err := s.repo.Create(ctx, account); err != nil {
			return nil, false, err
		}
		return account, true, nil
	}

	email := utils.SanitizeEmail(seed.Email)
	if seed.Password == "" || !utils.IsValidEmail(email) {
		return nil, false, appErrors.NewAppError("VALIDATION_ERROR", "admin reset needs a password and a valid email", nil)
	}

	hashed, err := utils.HashPassword(seed.Password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	account.Email = email
	account.PasswordHashed = hashed
	if seed.ContactMail != "" {
		contactMail := utils.SanitizeEmail(seed.ContactMail)
		account.ContactMail = &contactMail
	}
	account.ClearVerificationCode()
	account.TokenGeneration++

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, domainAdmin.ErrEmailTaken) {
			return nil, false, appErrors.ErrEmailTaken
		}
		return nil, false, err
	}

	return account, false, nil
}

func (s *Service) newAccount(seed Seed) (*domainAdmin.Account, error) {
	email := utils.SanitizeEmail(seed.Email)
	if seed.Username == "" || seed.Password == "" || !utils.IsValidEmail(email) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "admin seed needs a username, a password and a valid email", nil)
	}

	hashed, err := utils.HashPassword(seed.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	contactMail := utils.SanitizeEmail(seed.ContactMail)
	if contactMail == "" {
		contactMail = email
	}

	return &domainAdmin.Account{
		Username:       seed.Username,
		Email:          email,
		PasswordHashed: hashed,
		ContactMail:    &contactMail,
	}, nil
}

func (s *Service) issueCode(ctx context.Context, account *domainAdmin.Account) error {
	code, err := s.generateCode()
	if err != nil {
		return err
	}

	account.SetVerificationCode(code, s.now().Add(s.codeTTL))
	if err := s.repo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// recordFailedAttempt counts a wrong guess against the code that was checked. The code is
// dropped once too many guesses were made.
func (s *Service) recordFailedAttempt(ctx context.Context, account *domainAdmin.Account) {
	if !account.HasVerificationCode() {
		return
	}

	if err := s.repo.RecordFailedAttempt(ctx, account.ID, *account.VerificationCode, s.maxAttempts); err != nil {
		logger.Error("Failed to record verification attempt", zap.Error(err))
		return
	}

	if account.VerificationAttempts+1 >= s.maxAttempts {
		logger.Warn("Verification code revoked after repeated failures",
			zap.Uint("admin_id", account.ID),
			zap.String("event", "code_attempts_exhausted"),
		)
	}
}

func (s *Service) verifyChange(ctx context.Context, accountID uint, otp, password string) (*domainAdmin.Account, error) {
	account, err := s.getByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.CodeMatches(otp) {
		s.recordFailedAttempt(ctx, account)
		return nil, appErrors.ErrInvalidOTP
	}
	if account.CodeExpired(s.now()) {
		return nil, appErrors.ErrOTPExpired
	}

	if !utils.CheckPassword(account.PasswordHashed, password) {
		logger.Warn("Wrong current password on account change",
			zap.Uint("admin_id", account.ID),
			zap.String("event", "wrong_password"),
		)
		return nil, appErrors.ErrWrongPassword
	}

	return account, nil
}

func (s *Service) commitChange(ctx context.Context, account *domainAdmin.Account, event string) (*TokenResponse, error) {
	account.ClearVerificationCode()
	account.TokenGeneration++

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, domainAdmin.ErrEmailTaken) {
			return nil, appErrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	resp, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin account updated",
		zap.Uint("admin_id", account.ID),
		zap.Int("token_generation", account.TokenGeneration),
		zap.String("event", event),
	)
	return resp, nil
}

func (s *Service) issueToken(account *domainAdmin.Account) (*TokenResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(account.ID, account.Username, account.TokenGeneration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *Service) getByEmail(ctx context.Context, email string) (*domainAdmin.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAccountNotFound) {
			return nil, appErrors.ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return account, nil
}

func (s *Service) getByID(ctx context.Context, id uint) (*domainAdmin.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAccountNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return account, nil
}
