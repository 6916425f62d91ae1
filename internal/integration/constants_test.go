package integration_test

const (
	TestUsername      = "jdoe"
	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserEmail     = "test@example.com"
	TestUserPhone     = "+5511999999999"
	TestUserPassword  = "Test123!@#"

	TestPublicKey     = "pk_test_51HxYzIntegration"
	TestSecretKey     = "sk_test_51HxYzIntegration"
	TestWebhookSecret = "whsec_integration"
	TestPriceID       = "price_1QaBcD"
)
