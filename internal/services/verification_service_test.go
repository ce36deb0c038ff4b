package services

import (
	"strings"
	"testing"
)

func TestGenerateCode_Range(t *testing.T) {
	svc := NewVerificationService(&fakeEmailSender{}, &fakeCaller{})

	for i := 0; i < 1000; i++ {
		code := svc.GenerateCode()
		if code < 10000 || code > 99999 {
			t.Fatalf("code %d out of 5-digit range", code)
		}
	}
}

func TestIssue_Email(t *testing.T) {
	emails := &fakeEmailSender{}
	svc := NewVerificationService(emails, &fakeCaller{})

	if err := svc.Issue("email", 12345, "Ann", "ann@x.com", ""); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if len(emails.verificationCodes) != 1 || emails.verificationCodes[0] != 12345 {
		t.Fatalf("sent codes = %v, want [12345]", emails.verificationCodes)
	}
}

func TestIssue_Phone(t *testing.T) {
	caller := &fakeCaller{}
	svc := NewVerificationService(&fakeEmailSender{}, caller)

	if err := svc.Issue("phone", 54321, "Ann", "", "5551234567"); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if len(caller.calls) != 1 {
		t.Fatalf("calls placed = %d, want 1", len(caller.calls))
	}
	if !strings.Contains(caller.calls[0], "5 4 3 2 1") {
		t.Fatalf("twiml %q must spell the code digit by digit", caller.calls[0])
	}
	// repeated once so the listener gets a second chance
	if strings.Count(caller.calls[0], "5 4 3 2 1") != 2 {
		t.Fatalf("twiml %q must speak the code twice", caller.calls[0])
	}
}

func TestIssue_UnknownMethod(t *testing.T) {
	svc := NewVerificationService(&fakeEmailSender{}, &fakeCaller{})

	if err := svc.Issue("carrier-pigeon", 12345, "Ann", "ann@x.com", ""); err != ErrInvalidMethod {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}

func TestIssue_ProviderFailure(t *testing.T) {
	emails := &fakeEmailSender{failSend: true}
	caller := &fakeCaller{fail: true}
	svc := NewVerificationService(emails, caller)

	if err := svc.Issue("email", 12345, "Ann", "ann@x.com", ""); err != ErrDispatchFailed {
		t.Fatalf("email: expected ErrDispatchFailed, got %v", err)
	}
	if err := svc.Issue("phone", 12345, "Ann", "", "5551234567"); err != ErrDispatchFailed {
		t.Fatalf("phone: expected ErrDispatchFailed, got %v", err)
	}
}
