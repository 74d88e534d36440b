package mocks

//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/rustyeddy/tradesim/sim Source
