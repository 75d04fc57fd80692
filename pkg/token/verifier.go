package token

// 測試時可覆蓋, 例如 usecase 測試不需要真的簽 token
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)

// Verifier verify bearer credential
type Verifier interface {
	Verify(credential string) (Identity, error)
}

// VerifierFunc adapter of a function to Verifier
type VerifierFunc func(credential string) (Identity, error)

// Verify implements Verifier
func (f VerifierFunc) Verify(credential string) (Identity, error) {
	return f(credential)
}

// Default 使用 HS256 共享密鑰的 Verifier
var Default Verifier = VerifierFunc(Verify)
