// Package mocks holds gomock doubles of the persistence interfaces.
package mocks

//go:generate mockgen -destination=store.go -package=mocks github.com/ctdp-app/ctdp/store DB
//go:generate mockgen -destination=archive.go -package=mocks github.com/ctdp-app/ctdp/archive Archiver
//go:generate mockgen -destination=board.go -package=mocks github.com/ctdp-app/ctdp/board SubtaskUpdater
