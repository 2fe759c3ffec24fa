package model

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

// PasswordPolicy is an optional strength layer on top of the baseline
// length check in NewPassword. Callers that want scored strength run
// Check before hashing; NewPassword itself stays length-only.
type PasswordPolicy struct {
	MinLength int
	// MinScore is a zxcvbn score in [0,4]. 0 disables scoring.
	MinScore int
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: PasswordMinLength, MinScore: 2}
}

// Check validates plain against the policy. userInputs (email, name)
// are penalized by the strength estimator.
func (p PasswordPolicy) Check(plain string, userInputs ...string) error {
	if len(plain) < p.MinLength {
		return NewError(KindInvalidPassword,
			fmt.Sprintf("password must be at least %d characters", p.MinLength), nil)
	}
	if p.MinScore > 0 {
		if score := zxcvbn.PasswordStrength(plain, userInputs).Score; score < p.MinScore {
			return NewError(KindInvalidPassword,
				fmt.Sprintf("password is too weak: score %d, need %d", score, p.MinScore), nil)
		}
	}
	return nil
}
