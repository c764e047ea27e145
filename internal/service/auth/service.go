package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"refugee-portal/internal/config"
	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/dashboard"
	"refugee-portal/internal/service/email"
)

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailExists              = errors.New("email already registered")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrProfileNotFound          = errors.New("profile not found")
	ErrTokenExpired             = errors.New("password reset token has expired")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrVerificationTokenExpired = errors.New("email verification token has expired")
	ErrPrivilegedRole           = errors.New("role requires a service key")
)

const (
	passwordResetTTL = time.Hour
	verificationTTL  = 24 * time.Hour
)

// ClientInfo describes the device a session was opened from.
type ClientInfo struct {
	UserAgent *string
	IPAddress *string
}

type Service interface {
	SignUp(ctx context.Context, input domain.SignUpInput, serviceKey string, client ClientInfo) (*domain.AuthResult, error)
	SignIn(ctx context.Context, input domain.SignInInput, client ClientInfo) (*domain.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*domain.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	Session(ctx context.Context, profileID uuid.UUID) (*domain.SessionInfo, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerificationEmail(ctx context.Context, email string) error
}

type Claims struct {
	ProfileID uuid.UUID   `json:"profile_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	accountRepo  repository.AccountRepository
	profileRepo  repository.ProfileRepository
	sessionRepo  repository.SessionRepository
	emailService email.Service
	cache        dashboard.Invalidator
	cfg          *config.Config
	log          *zap.Logger
}

func NewService(
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	emailService email.Service,
	cache dashboard.Invalidator,
	cfg *config.Config,
	log *zap.Logger,
) Service {
	return &service{
		accountRepo:  accountRepo,
		profileRepo:  profileRepo,
		sessionRepo:  sessionRepo,
		emailService: emailService,
		cache:        cache,
		cfg:          cfg,
		log:          log,
	}
}

func (s *service) SignUp(ctx context.Context, input domain.SignUpInput, serviceKey string, client ClientInfo) (*domain.AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	if input.Role == "" {
		input.Role = domain.RoleRefugee
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if !input.Role.SelfAssignable() && !s.validServiceKey(serviceKey) {
		return nil, ErrPrivilegedRole
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	profile := &domain.Profile{
		ID:                id,
		FullName:          input.FullName,
		Role:              input.Role,
		Email:             &input.Email,
		Phone:             input.Metadata.Phone,
		Gender:            input.Metadata.Gender,
		Nationality:       input.Metadata.Nationality,
		DateOfBirth:       input.Metadata.DateOfBirth,
		RequestedServices: input.Metadata.RequestedServices,
	}
	account := &domain.Account{
		ID:           id,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.accountRepo.CreateWithProfile(ctx, account, profile); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	if err := s.sendVerification(ctx, account.ID, account.Email, profile.FullName); err != nil {
		return nil, err
	}

	s.log.Info("account registered", zap.String("profile_id", id.String()), zap.String("role", string(profile.Role)))

	result := &domain.AuthResult{Profile: profile}
	if s.cfg.RequireEmailVerification {
		return result, nil
	}

	tokens, err := s.generateTokenPair(ctx, account.Email, profile, client)
	if err != nil {
		return nil, err
	}
	result.Tokens = tokens
	return result, nil
}

func (s *service) validServiceKey(key string) bool {
	if s.cfg.ServiceRoleKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.ServiceRoleKey)) == 1
}

func (s *service) SignIn(ctx context.Context, input domain.SignInInput, client ClientInfo) (*domain.AuthResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.cfg.RequireEmailVerification && !account.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	profile, err := s.profileRepo.GetByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	tokens, err := s.generateTokenPair(ctx, account.Email, profile, client)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{Profile: profile, Tokens: tokens}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if account == nil || profile == nil {
		return nil, ErrProfileNotFound
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, account.Email, profile, client)
}

func (s *service) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	return s.sessionRepo.Revoke(ctx, session.ID)
}

func (s *service) Session(ctx context.Context, profileID uuid.UUID) (*domain.SessionInfo, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	account, err := s.accountRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrProfileNotFound
	}

	return &domain.SessionInfo{
		Email:        account.Email,
		Profile:      profile,
		LandingRoute: profile.Role.LandingRoute(),
	}, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(ctx context.Context, emailAddr string, profile *domain.Profile, client ClientInfo) (*domain.TokenPair, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTAccessExpiry)

	accessClaims := &Claims{
		ProfileID: profile.ID,
		Email:     emailAddr,
		Role:      profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   profile.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()

	session := &domain.Session{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		TokenHash: hashToken(refreshTokenRaw),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	account, err := s.accountRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	resetToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.accountRepo.SetPasswordResetToken(ctx, account.ID, resetToken, time.Now().Add(passwordResetTTL)); err != nil {
		return err
	}

	name := s.displayName(ctx, account.ID)
	go func() {
		if err := s.emailService.SendPasswordResetEmail(context.Background(), account.Email, name, resetToken); err != nil {
			s.log.Error("failed to send password reset email", zap.String("profile_id", account.ID.String()), zap.Error(err))
		}
	}()

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return &validate.Error{Fields: map[string]string{"new_password": "must be between 8 and 72 characters"}}
	}

	account, err := s.accountRepo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrInvalidToken
	}

	if account.PasswordResetExpiresAt != nil && time.Now().After(*account.PasswordResetExpiresAt) {
		return ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.accountRepo.UpdatePassword(ctx, account.ID, string(hashedPassword)); err != nil {
		return err
	}

	if err := s.accountRepo.ClearPasswordResetToken(ctx, account.ID); err != nil {
		return err
	}

	// A new password ends every open session.
	return s.sessionRepo.RevokeAllForProfile(ctx, account.ID)
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	account, err := s.accountRepo.GetByEmailVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrInvalidToken
	}

	if account.EmailVerificationSentAt != nil && time.Now().After(account.EmailVerificationSentAt.Add(verificationTTL)) {
		return ErrVerificationTokenExpired
	}

	return s.accountRepo.VerifyEmail(ctx, account.ID)
}

func (s *service) ResendVerificationEmail(ctx context.Context, emailAddr string) error {
	account, err := s.accountRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if account == nil || account.IsEmailVerified {
		return nil
	}

	return s.sendVerification(ctx, account.ID, account.Email, s.displayName(ctx, account.ID))
}

func (s *service) sendVerification(ctx context.Context, accountID uuid.UUID, emailAddr, name string) error {
	verificationToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.accountRepo.SetEmailVerificationToken(ctx, accountID, verificationToken, time.Now()); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendEmailVerification(context.Background(), emailAddr, name, verificationToken); err != nil {
			s.log.Error("failed to send verification email", zap.String("profile_id", accountID.String()), zap.Error(err))
		}
	}()
	return nil
}

func (s *service) displayName(ctx context.Context, id uuid.UUID) string {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil || profile == nil {
		return "there"
	}
	return profile.FullName
}

func randomToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
