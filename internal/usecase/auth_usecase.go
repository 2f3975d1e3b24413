package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	"github.com/Yogesharu2003/BalajiDairy/internal/mail"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 15 * time.Minute
const refreshTokenTTL = 30 * 24 * time.Hour

// OTP codes and the reset-pending token share the same window.
const resetTTL = 10 * time.Minute

const resetTokenPurpose = "password_reset"

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	rtRepo    repo.RefreshTokenRepository
	resetRepo repo.PasswordResetCodeRepository
	mailer    mail.Mailer
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	rtRepo repo.RefreshTokenRepository,
	resetRepo repo.PasswordResetCodeRepository,
	mailer mail.Mailer,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		rtRepo:    rtRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
	}
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Address:  u.Address,
		Phone:    u.Phone,
		Role:     string(u.Role),
		Avatar:   u.Avatar,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (u *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}
	if !validator.IsEmailLike(email) {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid email address")
	}
	if msg := validator.ValidatePasswordStrength(req.Password); msg != "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, msg)
	}

	if existing, err := u.users.FindByUsername(ctx, username); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if existing != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "username already taken")
	}
	if existing, err := u.users.FindByEmail(ctx, email); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if existing != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already registered")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(pwHash),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         model.RoleUser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserDuplicate) {
			// lost a unique-index race on username/email
			return UserDTO{}, NewHTTPError(http.StatusConflict, "username or email already registered")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type TokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginResponse struct {
	User  UserDTO  `json:"user"`
	Token TokenDTO `json:"token"`
}

type LoginResult struct {
	Body              LoginResponse
	RefreshTokenPlain string
}

// Login accepts the username or the email as identifier.
func (u *AuthUsecase) Login(ctx context.Context, req LoginRequest, userAgent string) (*LoginResult, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "identifier and password are required")
	}

	user, err := u.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	refreshPlain, refreshHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &LoginResult{
		Body: LoginResponse{
			User: toUserDTO(user),
			Token: TokenDTO{
				AccessToken: accessToken,
				ExpiresIn:   expiresIn,
			},
		},
		RefreshTokenPlain: refreshPlain,
	}, nil
}

type RefreshResult struct {
	Body              TokenDTO
	RefreshTokenPlain string
}

func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenPlain string, userAgent string) (*RefreshResult, error) {
	if strings.TrimSpace(refreshTokenPlain) == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if err != nil || rt == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	if rt.ExpiresAt.Before(time.Now()) {
		_ = u.rtRepo.DeleteByID(ctx, rt.ID)
		return nil, NewHTTPError(http.StatusUnauthorized, "refresh token expired")
	}
	if rt.RevokedAt != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	// a used token coming back means the plain value leaked: drop every
	// session for the user
	if rt.UsedAt != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	if err := u.rtRepo.MarkUsed(ctx, rt.ID); err != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	newPlain, newHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	newRT := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: newHash,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := u.rtRepo.Create(ctx, newRT); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &RefreshResult{
		Body: TokenDTO{
			AccessToken: accessToken,
			ExpiresIn:   expiresIn,
		},
		RefreshTokenPlain: newPlain,
	}, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, refreshTokenPlain string) error {
	if refreshTokenPlain == "" {
		return NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if err != nil || rt == nil {
		return NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	if err := u.rtRepo.DeleteByID(ctx, rt.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	user, err := u.requireUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (UserDTO, error) {
	user, err := u.requireUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Address = strings.TrimSpace(req.Address)
	user.Phone = strings.TrimSpace(req.Phone)

	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// SetAvatar stores the new filename and returns the previous one for
// cleanup.
func (u *AuthUsecase) SetAvatar(ctx context.Context, userID int64, filename string) (string, error) {
	user, err := u.requireUser(ctx, userID)
	if err != nil {
		return "", err
	}

	old := user.Avatar
	if err := u.users.UpdateAvatar(ctx, userID, filename); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return old, nil
}

func (u *AuthUsecase) requireUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}

// ForgotPassword issues a fresh 6-digit code, replacing any earlier ones,
// and mails it to the account's address.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return NewHTTPError(http.StatusBadRequest, "username or email is required")
	}

	user, err := u.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return NewHTTPError(http.StatusNotFound, "no account found for that username or email")
	}

	if err := u.resetRepo.DeleteAllByUserID(ctx, user.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	code, err := newOTPCode()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	rc := &model.PasswordResetCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(resetTTL),
	}
	if err := u.resetRepo.Create(ctx, rc); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	body := fmt.Sprintf("Your Balaji Dairy password reset code is %s. It expires in 10 minutes.", code)
	if err := u.mailer.Send(user.Email, "Password reset code", body); err != nil {
		// code row stays; the user may retry sending
		return NewHTTPError(http.StatusServiceUnavailable, "could not send the reset email, please try again")
	}
	return nil
}

type VerifyOTPResult struct {
	ResetToken string `json:"reset_token"`
}

func (u *AuthUsecase) VerifyOTP(ctx context.Context, identifier string, code string) (VerifyOTPResult, error) {
	identifier = strings.TrimSpace(identifier)
	code = strings.TrimSpace(code)
	if identifier == "" || code == "" {
		return VerifyOTPResult{}, NewHTTPError(http.StatusBadRequest, "identifier and code are required")
	}

	user, err := u.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return VerifyOTPResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return VerifyOTPResult{}, NewHTTPError(http.StatusNotFound, "no account found for that username or email")
	}

	rc, err := u.resetRepo.FindByUserAndCode(ctx, user.ID, code)
	if errors.Is(err, repo.ErrNotFound) {
		return VerifyOTPResult{}, NewHTTPError(http.StatusBadRequest, "invalid OTP")
	}
	if err != nil {
		return VerifyOTPResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if rc.Expired(time.Now()) {
		_ = u.resetRepo.DeleteAllByUserID(ctx, user.ID)
		return VerifyOTPResult{}, NewHTTPError(http.StatusBadRequest, "OTP expired")
	}

	if err := u.resetRepo.MarkVerified(ctx, rc.ID); err != nil {
		return VerifyOTPResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := u.issueResetToken(user.ID)
	if err != nil {
		return VerifyOTPResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return VerifyOTPResult{ResetToken: token}, nil
}

type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword consumes a verified code: the new hash is written, the code
// rows are deleted, and every outstanding token stops working.
func (u *AuthUsecase) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	userID, err := u.parseResetToken(req.ResetToken)
	if err != nil {
		return NewHTTPError(http.StatusUnauthorized, "invalid or expired reset token")
	}

	if req.Password == "" || req.ConfirmPassword == "" {
		return NewHTTPError(http.StatusBadRequest, "password and confirmation are required")
	}
	if req.Password != req.ConfirmPassword {
		return NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}
	if msg := validator.ValidatePasswordStrength(req.Password); msg != "" {
		return NewHTTPError(http.StatusBadRequest, msg)
	}

	// the token alone is not enough: the verified code row must still exist
	if _, err := u.resetRepo.FindVerifiedByUserID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusUnauthorized, "invalid or expired reset token")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdatePassword(ctx, userID, string(pwHash)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// single use
	if err := u.resetRepo.DeleteAllByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// force re-login everywhere
	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.rtRepo.DeleteAllByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"tv":   user.TokenVersion,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(accessTokenTTL.Seconds()), nil
}

// issueResetToken is the "reset pending" marker handed out after OTP
// verification. Purpose-scoped so an access token can never stand in for it.
func (u *AuthUsecase) issueResetToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": resetTokenPurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(resetTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}

func (u *AuthUsecase) parseResetToken(token string) (int64, error) {
	if strings.TrimSpace(token) == "" {
		return 0, errors.New("missing token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(u.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetTokenPurpose {
		return 0, errors.New("wrong token purpose")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, errors.New("invalid subject")
	}
	return int64(sub), nil
}

// newOTPCode draws a 6-digit code from crypto/rand, zero-padded.
func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func newRandomTokenAndHash() (plain string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	plain = base64.RawURLEncoding.EncodeToString(b)

	sum := sha256.Sum256([]byte(plain))
	hash = base64.RawURLEncoding.EncodeToString(sum[:])

	return plain, hash, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
