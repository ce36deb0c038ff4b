package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"todoapp/internal/utils"
)

var (
	ErrInvalidMethod  = errors.New("invalid verification method")
	ErrDispatchFailed = errors.New("verification code failed to send")
)

const verificationCodeTTL = 10 * time.Minute

// VoiceCaller is satisfied by *utils.TwilioClient.
type VoiceCaller interface {
	PlaceCall(to, twiml string) (*utils.PlaceCallResponse, error)
}

// VerificationService generates one-time codes and dispatches them over an
// external channel. It never touches account state; that is the caller's job.
type VerificationService interface {
	GenerateCode() int
	CodeTTL() time.Duration
	Issue(method string, code int, name, email, phone string) error
}

type verificationService struct {
	emails EmailService
	calls  VoiceCaller
}

func NewVerificationService(emails EmailService, calls VoiceCaller) VerificationService {
	return &verificationService{emails: emails, calls: calls}
}

// GenerateCode returns a uniformly random 5-digit code with a nonzero
// leading digit (10000-99999).
func (s *verificationService) GenerateCode() int {
	first := rand.Intn(9) + 1
	rest := rand.Intn(10000)
	return first*10000 + rest
}

func (s *verificationService) CodeTTL() time.Duration {
	return verificationCodeTTL
}

// Issue sends one fresh code; each call is one send. Provider errors surface
// as ErrDispatchFailed and leave any state written by the caller in place.
func (s *verificationService) Issue(method string, code int, name, email, phone string) error {
	switch method {
	case "email":
		if err := s.emails.SendVerificationEmail(email, code); err != nil {
			log.Printf("[verification][issue] email send failed for %s: %v", email, err)
			return ErrDispatchFailed
		}
		log.Printf("[verification][issue] email sent to=%s name=%q", email, name)
		return nil
	case "phone":
		spoken := spellDigits(code)
		twiml := fmt.Sprintf(
			"<Response><Say>Your verification code is %s. Your verification code is %s.</Say></Response>",
			spoken, spoken,
		)
		if _, err := s.calls.PlaceCall(phone, twiml); err != nil {
			log.Printf("[verification][issue] voice call failed for %s: %v", phone, err)
			return ErrDispatchFailed
		}
		log.Printf("[verification][issue] voice call placed to=%s", phone)
		return nil
	default:
		return ErrInvalidMethod
	}
}

// spellDigits spaces the digits out so the voice engine reads them one by one.
func spellDigits(code int) string {
	digits := strings.Split(fmt.Sprintf("%d", code), "")
	return strings.Join(digits, " ")
}
