package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/football --output domain/football --outpkg footballmock --filename provider_mock.go
