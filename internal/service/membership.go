package service

import (
	"strings"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"

	"github.com/go-playground/validator/v10"
)

// ParseMemberEmails splits a comma separated list into trimmed, non-empty, unique addresses.
// Every address must pass the validator's email rule.
func ParseMemberEmails(v *validator.Validate, raw string) ([]string, error) {
	var emails []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		email := strings.TrimSpace(part)
		if email == "" {
			continue
		}
		if err := v.Var(email, "email"); err != nil {
			return nil, apperrors.NewValidationError("member_emails", "invalid email address: "+email)
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails, nil
}

// resolveMembers matches emails against users and returns the matched user IDs plus the emails nobody owns
func resolveMembers(emails []string, users []models.User, caseSensitive bool) (ids []string, unresolved []string) {
	norm := func(s string) string {
		if caseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	byEmail := make(map[string]string, len(users))
	for _, u := range users {
		byEmail[norm(u.Email)] = u.ID
	}

	for _, email := range emails {
		if id, ok := byEmail[norm(email)]; ok {
			ids = append(ids, id)
			continue
		}
		unresolved = append(unresolved, email)
	}
	return ids, unresolved
}

// admittedSet returns leader followed by members, without duplicates
func admittedSet(leader string, members []string) []string {
	set := []string{leader}
	seen := map[string]struct{}{leader: {}}
	for _, id := range members {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		set = append(set, id)
	}
	return set
}
