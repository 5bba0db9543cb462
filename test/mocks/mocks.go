// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/device_repository.go -destination=device_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/deal_repository.go -destination=deal_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/device_service.go -destination=device_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/settlement_service.go -destination=settlement_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/insight_service.go -destination=insight_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/media.go -destination=media_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/services/settlement.go -destination=tx_runner_mock.go -package=mocks TxRunner
