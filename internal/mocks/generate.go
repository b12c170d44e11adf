package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/playerpoints --output domain/playerpoints --outpkg pointsmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/playerpoints --output domain/playerpoints --outpkg pointsmock --filename repository_mock.go
