//go:build windows

package main

import "os"

// watchVisibility на Windows не поддерживается: задания терминала не приостанавливаются
func watchVisibility() (<-chan os.Signal, func()) {
	return nil, func() {}
}

func isSuspend(os.Signal) bool {
	return false
}

func suspend() error {
	return nil
}
