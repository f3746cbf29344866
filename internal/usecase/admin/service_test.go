package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/umeshkhanal/rumooz/internal/config"
	domainAdmin "github.com/umeshkhanal/rumooz/internal/domain/admin"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/mail"
	"github.com/umeshkhanal/rumooz/internal/mocks"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/token"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testPassword = "S3cret!pass"
	testEmail    = "owner@rumooz.test"
)

type memRepo struct {
	mu       sync.Mutex
	accounts map[uint]domainAdmin.Account
	nextID   uint
	updates  int
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: make(map[uint]domainAdmin.Account), nextID: 1}
}

func (r *memRepo) Create(_ context.Context, a *domainAdmin.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return domainAdmin.ErrAccountAlreadyExists
		}
	}
	a.ID = r.nextID
	r.nextID++
	r.accounts[a.ID] = *a
	return nil
}

func (r *memRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.accounts)), nil
}

func (r *memRepo) First(ctx context.Context) (*domainAdmin.Account, error) {
	r.mu.Lock()
	ids := make([]int, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, int(id))
	}
	r.mu.Unlock()
	if len(ids) == 0 {
		return nil, domainAdmin.ErrAccountNotFound
	}
	sort.Ints(ids)
	return r.GetByID(ctx, uint(ids[0]))
}

func (r *memRepo) GetByID(_ context.Context, id uint) (*domainAdmin.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domainAdmin.ErrAccountNotFound
	}
	return &a, nil
}

func (r *memRepo) find(match func(domainAdmin.Account) bool) (*domainAdmin.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if match(a) {
			return &a, nil
		}
	}
	return nil, domainAdmin.ErrAccountNotFound
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*domainAdmin.Account, error) {
	return r.find(func(a domainAdmin.Account) bool { return a.Username == username })
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*domainAdmin.Account, error) {
	return r.find(func(a domainAdmin.Account) bool { return a.Email == email })
}

func (r *memRepo) Update(_ context.Context, a *domainAdmin.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return domainAdmin.ErrAccountNotFound
	}
	for id, existing := range r.accounts {
		if id != a.ID && existing.Email == a.Email {
			return domainAdmin.ErrEmailTaken
		}
	}
	r.accounts[a.ID] = *a
	r.updates++
	return nil
}

func (r *memRepo) ClearExpiredCodes(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.accounts {
		if a.VerificationExpires != nil && a.VerificationExpires.Before(before) {
			a.ClearVerificationCode()
			r.accounts[id] = a
			n++
		}
	}
	return n, nil
}

func (r *memRepo) RecordFailedAttempt(_ context.Context, id uint, code string, maxAttempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.VerificationCode == nil || *a.VerificationCode != code {
		return nil
	}
	a.VerificationAttempts++
	if a.VerificationAttempts >= maxAttempts {
		a.ClearVerificationCode()
	}
	r.accounts[id] = a
	return nil
}

func (r *memRepo) stored(t *testing.T, id uint) *domainAdmin.Account {
	t.Helper()
	a, err := r.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

type fixture struct {
	svc      *Service
	repo     *memRepo
	notifier *mocks.MockNotifier
	tokens   *token.Manager
	now      time.Time
	codes    []string
	account  *domainAdmin.Account
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     newMemRepo(),
		notifier: mocks.NewMockNotifier(ctrl),
		now:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	f.tokens = token.NewManager("test-secret", 24*time.Hour, token.WithClock(clock))

	seq := 0
	gen := func() (string, error) {
		seq++
		code := fmt.Sprintf("%06d", 100000+seq)
		f.codes = append(f.codes, code)
		return code, nil
	}

	opts = append([]Option{WithClock(clock), WithCodeGenerator(gen)}, opts...)
	f.svc = NewService(f.repo, f.tokens, f.notifier, config.OTPConfig{TTLMinutes: 10, MaxAttempts: 3}, opts...)

	account, err := f.svc.EnsureDefaultAccount(context.Background(), Seed{
		Username: "rumooz", Email: testEmail, Password: testPassword,
	})
	require.NoError(t, err)
	f.account = account

	return f
}

func (f *fixture) lastCode() string { return f.codes[len(f.codes)-1] }

// login runs Login followed by ConfirmCode and returns the session token.
func (f *fixture) login(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)

	resp, err := f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: f.repo.stored(t, f.account.ID).Email, Code: f.lastCode()})
	require.NoError(t, err)
	return resp.Token
}

// pendingOTP issues a code through SendCode, as the admin UI does before a change.
func (f *fixture) pendingOTP(t *testing.T) string {
	t.Helper()
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.svc.SendCode(context.Background(), &SendCodeRequest{Email: f.repo.stored(t, f.account.ID).Email}))
	return f.lastCode()
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &LoginRequest{Username: "nobody", Password: testPassword})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	assert.False(t, f.repo.stored(t, f.account.ID).HasVerificationCode())
}

func TestLogin_IssuesCodeWithoutToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Login(context.Background(), &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testEmail, resp.Email)

	stored := f.repo.stored(t, f.account.ID)
	require.True(t, stored.HasVerificationCode())
	assert.Equal(t, f.lastCode(), *stored.VerificationCode)
	assert.Equal(t, f.now.Add(10*time.Minute), *stored.VerificationExpires)
}

func TestLogin_ValidationError(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Login(context.Background(), &LoginRequest{Username: "", Password: ""})

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSendCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SendCode(ctx, &SendCodeRequest{Email: "nobody@rumooz.test"})
	assert.ErrorIs(t, err, appErrors.ErrEmailNotFound)

	var sent mail.Message
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
		sent = msg
		return nil
	})

	require.NoError(t, f.svc.SendCode(ctx, &SendCodeRequest{Email: " Owner@Rumooz.test "}))
	assert.Equal(t, testEmail, sent.To)
	assert.Contains(t, sent.Text, f.lastCode())
}

func TestSendCode_InvalidatesPreviousCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)
	first := f.lastCode()

	second := f.pendingOTP(t)
	require.NotEqual(t, first, second)

	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: first})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCode)

	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: second})
	assert.NoError(t, err)
}

func TestSendCode_NotificationFailure(t *testing.T) {
	f := newFixture(t)

	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	err := f.svc.SendCode(context.Background(), &SendCodeRequest{Email: testEmail})
	assert.ErrorIs(t, err, appErrors.ErrNotificationFailed)
}

func TestSendCode_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockLimiter(ctrl)
	f := newFixture(t, WithLimiter(limiter))

	key := fmt.Sprintf("send-code:%d", f.account.ID)
	limiter.EXPECT().Allow(gomock.Any(), key).Return(false, nil)

	err := f.svc.SendCode(context.Background(), &SendCodeRequest{Email: testEmail})
	assert.ErrorIs(t, err, appErrors.ErrTooManyRequests)
	assert.False(t, f.repo.stored(t, f.account.ID).HasVerificationCode())
}

func TestSendCode_ThrottleBackendDownFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockLimiter(ctrl)
	f := newFixture(t, WithLimiter(limiter))

	limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, errors.New("redis: connection refused"))
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.SendCode(context.Background(), &SendCodeRequest{Email: testEmail}))
}

func TestConfirmCode_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: "nobody@rumooz.test", Code: "123456"})
	assert.ErrorIs(t, err, appErrors.ErrEmailNotFound)

	// no code issued yet
	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: "123456"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCode)

	_, err = f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)
	code := f.lastCode()

	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: "999999"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCode)

	f.advance(9 * time.Minute)
	resp, err := f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, f.now.Add(24*time.Hour), resp.ExpiresAt)

	stored := f.repo.stored(t, f.account.ID)
	assert.Nil(t, stored.VerificationCode)
	assert.Nil(t, stored.VerificationExpires)

	identity, err := f.svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, f.account.ID, identity.AccountID)
	assert.Equal(t, "rumooz", identity.Username)

	// codes are single use
	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: code})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCode)
}

func TestConfirmCode_ExpiryBoundary(t *testing.T) {
	ctx := context.Background()

	t.Run("valid at exactly the expiry instant", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
		require.NoError(t, err)

		f.advance(10 * time.Minute)
		_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: f.lastCode()})
		assert.NoError(t, err)
	})

	t.Run("expired one second later", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
		require.NoError(t, err)

		f.advance(10*time.Minute + time.Second)
		_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: f.lastCode()})
		assert.ErrorIs(t, err, appErrors.ErrCodeExpired)
	})

	t.Run("expired after eleven minutes", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
		require.NoError(t, err)

		f.advance(11 * time.Minute)
		_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: f.lastCode()})
		assert.ErrorIs(t, err, appErrors.ErrCodeExpired)
	})
}

func TestConfirmCode_AttemptsExhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)
	code := f.lastCode()

	for i := 0; i < 3; i++ {
		_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: "000000"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCode)
	}

	assert.False(t, f.repo.stored(t, f.account.ID).HasVerificationCode())

	_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: code})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCode)
}

func TestConfirmCode_RejectsMalformedCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)

	for _, code := range []string{"12345", "1234567", "12a456"} {
		_, err = f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: code})

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr), code)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}

	// Malformed input never reaches the attempt counter.
	stored := f.repo.stored(t, f.account.ID)
	assert.True(t, stored.HasVerificationCode())
	assert.Zero(t, stored.VerificationAttempts)
}

func TestChangeEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oldToken := f.login(t)
	otp := f.pendingOTP(t)

	resp, err := f.svc.ChangeEmail(ctx, f.account.ID, &ChangeEmailRequest{
		Email: "New@Rumooz.test", Password: testPassword, OTP: otp,
	})
	require.NoError(t, err)

	stored := f.repo.stored(t, f.account.ID)
	assert.Equal(t, "new@rumooz.test", stored.Email)
	assert.False(t, stored.HasVerificationCode())
	assert.Equal(t, 1, stored.TokenGeneration)

	_, err = f.svc.Authenticate(ctx, oldToken)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.NoError(t, err)
}

func TestChangeEmail_Taken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.Create(ctx, &domainAdmin.Account{Username: "other", Email: "other@rumooz.test"}))
	otp := f.pendingOTP(t)

	_, err := f.svc.ChangeEmail(ctx, f.account.ID, &ChangeEmailRequest{
		Email: "other@rumooz.test", Password: testPassword, OTP: otp,
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailTaken)
	assert.Equal(t, testEmail, f.repo.stored(t, f.account.ID).Email)
}

func TestChangeOperations_CheckOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ChangeContactMail(ctx, 99, &ChangeContactMailRequest{
			ContactMail: "sales@rumooz.test", Password: testPassword, OTP: "123456",
		})
		assert.ErrorIs(t, err, appErrors.ErrAccountNotFound)
	})

	t.Run("otp checked before password", func(t *testing.T) {
		f := newFixture(t)
		f.pendingOTP(t)
		_, err := f.svc.ChangeContactMail(ctx, f.account.ID, &ChangeContactMailRequest{
			ContactMail: "sales@rumooz.test", Password: "wrong", OTP: "000000",
		})
		assert.ErrorIs(t, err, appErrors.ErrInvalidOTP)
	})

	t.Run("no pending otp", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ChangePassword(ctx, f.account.ID, &ChangePasswordRequest{
			CurrentPassword: testPassword, NewPassword: "N3w!password", OTP: "100001",
		})
		assert.ErrorIs(t, err, appErrors.ErrInvalidOTP)
	})

	t.Run("expired otp", func(t *testing.T) {
		f := newFixture(t)
		otp := f.pendingOTP(t)
		f.advance(10*time.Minute + time.Second)
		_, err := f.svc.ChangeContactMail(ctx, f.account.ID, &ChangeContactMailRequest{
			ContactMail: "sales@rumooz.test", Password: testPassword, OTP: otp,
		})
		assert.ErrorIs(t, err, appErrors.ErrOTPExpired)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)
		otp := f.pendingOTP(t)
		_, err := f.svc.ChangeContactMail(ctx, f.account.ID, &ChangeContactMailRequest{
			ContactMail: "sales@rumooz.test", Password: "wrong", OTP: otp,
		})
		assert.ErrorIs(t, err, appErrors.ErrWrongPassword)
		assert.True(t, f.repo.stored(t, f.account.ID).HasVerificationCode())
	})

	t.Run("weak new password", func(t *testing.T) {
		f := newFixture(t)
		otp := f.pendingOTP(t)
		_, err := f.svc.ChangePassword(ctx, f.account.ID, &ChangePasswordRequest{
			CurrentPassword: testPassword, NewPassword: "password", OTP: otp,
		})

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "WEAK_PASSWORD", appErr.Code)
	})
}

func TestChangeContactMail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otp := f.pendingOTP(t)

	_, err := f.svc.ChangeContactMail(ctx, f.account.ID, &ChangeContactMailRequest{
		ContactMail: "sales@rumooz.test", Password: testPassword, OTP: otp,
	})
	require.NoError(t, err)

	profile, err := f.svc.GetProfile(ctx, f.account.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.ContactMail)
	assert.Equal(t, "sales@rumooz.test", *profile.ContactMail)
	assert.False(t, f.repo.stored(t, f.account.ID).HasVerificationCode())
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otp := f.pendingOTP(t)

	_, err := f.svc.ChangePassword(ctx, f.account.ID, &ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "N3w!password", OTP: otp,
	})
	require.NoError(t, err)

	stored := f.repo.stored(t, f.account.ID)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "N3w!password"))
	assert.False(t, stored.HasVerificationCode())

	_, err = f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: "N3w!password"})
	assert.NoError(t, err)
}

func TestAuthenticate_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	orphan, _, err := f.tokens.Issue(42, "ghost", 0)
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	valid := f.login(t)
	f.advance(24*time.Hour + time.Second)
	_, err = f.svc.Authenticate(ctx, valid)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestEnsureDefaultAccount_Idempotent(t *testing.T) {
	f := newFixture(t)

	again, err := f.svc.EnsureDefaultAccount(context.Background(), Seed{
		Username: "someone-else", Email: "else@rumooz.test", Password: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, f.account.ID, again.ID)
	assert.Equal(t, testEmail, again.ContactAddress())

	count, _ := f.repo.Count(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestUpsertAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oldToken := f.login(t)

	account, created, err := f.svc.UpsertAccount(ctx, Seed{
		Username: "rumooz", Email: "reset@rumooz.test", Password: "Reset#2025",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, f.account.ID, account.ID)
	assert.True(t, utils.CheckPassword(account.PasswordHashed, "Reset#2025"))

	_, err = f.svc.Authenticate(ctx, oldToken)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	account, created, err = f.svc.UpsertAccount(ctx, Seed{
		Username: "second", Email: "second@rumooz.test", Password: "Second#2025",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, f.account.ID, account.ID)
}

func TestCleanupExpiredCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginRequest{Username: "rumooz", Password: testPassword})
	require.NoError(t, err)

	f.svc.cleanupExpiredCodes(ctx)
	assert.True(t, f.repo.stored(t, f.account.ID).HasVerificationCode())

	f.advance(11 * time.Minute)
	f.svc.cleanupExpiredCodes(ctx)
	assert.True(t, f.repo.stored(t, f.account.ID).HasVerificationCode(), "recently expired codes are kept")

	f.advance(expiredCodeRetention)
	f.svc.cleanupExpiredCodes(ctx)
	assert.False(t, f.repo.stored(t, f.account.ID).HasVerificationCode())
}

func TestConfirmCode_ExpiredAfterCleanupTick(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	code := f.pendingOTP(t)

	f.advance(11 * time.Minute)
	f.svc.cleanupExpiredCodes(ctx)

	_, err := f.svc.ConfirmCode(ctx, &ConfirmCodeRequest{Email: testEmail, Code: code})
	assert.ErrorIs(t, err, appErrors.ErrCodeExpired)
}

func TestRecordFailedAttempt_IgnoresSupersededCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.pendingOTP(t)

	// a guess checked against the first code lands after a new code was sent
	checked := f.repo.stored(t, f.account.ID)
	fresh := f.pendingOTP(t)

	f.svc.recordFailedAttempt(ctx, checked)

	stored := f.repo.stored(t, f.account.ID)
	require.True(t, stored.HasVerificationCode())
	assert.Equal(t, fresh, *stored.VerificationCode)
	assert.Zero(t, stored.VerificationAttempts)
}

func TestUpsertAccount_RejectsInvalidEmailOnReset(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.UpsertAccount(context.Background(), Seed{Username: "rumooz", Email: "", Password: "An0ther!pass"})

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, testEmail, f.repo.stored(t, f.account.ID).Email)
}

func TestStartCodeCleanupJob_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.svc.StartCodeCleanupJob(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup job did not stop")
	}
}
