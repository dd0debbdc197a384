package policy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика тенанта не сконфигурирована
	ErrPolicyNotFound = errors.New("policy.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("policy.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("policy.repository: failed to scan row")
)
