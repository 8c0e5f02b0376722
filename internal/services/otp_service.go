package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/smsgateway"
)

// OTPService issues and verifies one-time login codes. Codes are single-use:
// both successful verification and detection of expiry clear the stored code.
type OTPService struct {
	userRepo repositories.UserRepository
	gateway  smsgateway.Gateway
	expiry   time.Duration
}

// NewOTPService creates a new OTPService
func NewOTPService(userRepo repositories.UserRepository, gateway smsgateway.Gateway, expiry time.Duration) *OTPService {
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	return &OTPService{
		userRepo: userRepo,
		gateway:  gateway,
		expiry:   expiry,
	}
}

// RequestCode generates a 6-digit code for the user matching both identity
// fields, stores it with an expiry, and dispatches it over SMS. A dispatch
// failure rolls the stored code back so the user is never left with a code
// they cannot have received.
func (s *OTPService) RequestCode(ctx context.Context, cardNumber int, phone string) error {
	user, err := s.userRepo.FindByCardAndPhone(ctx, cardNumber, phone)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	expiresAt := time.Now().Add(s.expiry)
	if err := s.userRepo.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}

	if err := s.gateway.SendOTP(ctx, user.Phone, code); err != nil {
		if clearErr := s.userRepo.ClearOTP(ctx, user.ID); clearErr != nil {
			log.Printf("[WARN] OTPService: failed to roll back undelivered code for user %s: %v", user.ID.Hex(), clearErr)
		}
		return fmt.Errorf("%w: %v", apperrors.ErrDispatch, err)
	}

	return nil
}

// VerifyCode checks a submitted code against the stored one. On success the
// code is cleared and the matched user returned for token issuance. An expired
// code is also cleared, so the next attempt fails as invalid rather than
// expired.
func (s *OTPService) VerifyCode(ctx context.Context, cardNumber int, phone, submitted string) (*models.User, error) {
	user, err := s.userRepo.FindByCardAndPhone(ctx, cardNumber, phone)
	if err != nil {
		return nil, err
	}

	if user.OTP == "" || user.OTP != submitted {
		return nil, apperrors.ErrInvalidCode
	}

	if user.OTPExpiresAt == nil {
		return nil, apperrors.ErrInvalidCode
	}

	if time.Now().After(*user.OTPExpiresAt) {
		if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
			log.Printf("[WARN] OTPService: failed to clear expired code for user %s: %v", user.ID.Hex(), err)
		}
		return nil, apperrors.ErrCodeExpired
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
