package integration_test

import "github.com/metinatakli/movie-ticket-booking/internal/domain"

const (
	TestCustomerId      = 1
	TestOtherCustomerId = 2
	TestAdminId         = 100

	// Seeded by testdata/catalog_up.sql
	TestShowId         = 1
	TestInactiveShowId = 2
	TestPastShowId     = 3
	TestSeatA1         = 1
	TestSeatA2         = 2
	TestSeatA3         = 3
	TestInactiveSeatB1 = 4
)

var (
	TestCustomer      = domain.Actor{UserID: TestCustomerId, Role: domain.RoleCustomer}
	TestOtherCustomer = domain.Actor{UserID: TestOtherCustomerId, Role: domain.RoleCustomer}
	TestAdmin         = domain.Actor{UserID: TestAdminId, Role: domain.RoleAdmin}
)
