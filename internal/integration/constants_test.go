package integration_test

const (
	dbName         = "cinebook"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// User related constants
	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserEmail     = "test@example.com"
	TestUserPassword  = "Test123!@#"

	// Catalog related constants
	TestMovieTitle  = "Test Movie"
	TestScreenName  = "Screen 1"
	TestBasePrice   = "10.00"
	TestSeatsPerRow = 4
	TestSeatRows    = 2
)
