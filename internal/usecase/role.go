package usecase

import (
	"strings"

	"identity-service/internal/data/entity"
)

const adminSuffix = ".admin"

// DeriveRole maps a raw submitted email to an access role and the canonical
// email that is actually registered with the identity provider. A local part
// ending in ".admin" grants the administrator role and the tag is stripped;
// any other email passes through unchanged as a customer.
//
// Total by design: malformed emails are rejected by input validation before
// this runs, so there is no failure path here. A local part that is exactly
// ".admin" strips to an empty local part and is passed through as-is.
func DeriveRole(rawEmail string) (entity.Role, string) {
	at := strings.LastIndex(rawEmail, "@")
	if at < 0 {
		if strings.HasSuffix(rawEmail, adminSuffix) {
			return entity.RoleAdministrator, strings.TrimSuffix(rawEmail, adminSuffix)
		}
		return entity.RoleCustomer, rawEmail
	}

	localPart, domain := rawEmail[:at], rawEmail[at+1:]
	if !strings.HasSuffix(localPart, adminSuffix) {
		return entity.RoleCustomer, rawEmail
	}

	return entity.RoleAdministrator, strings.TrimSuffix(localPart, adminSuffix) + "@" + domain
}
