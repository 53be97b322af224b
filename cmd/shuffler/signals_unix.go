//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// watchVisibility подписывается на приостановку и возобновление процесса
func watchVisibility() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTSTP, syscall.SIGCONT)
	return ch, func() { signal.Stop(ch) }
}

func isSuspend(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

// suspend останавливает процесс так же, как это сделал бы SIGTSTP без обработчика
func suspend() error {
	return syscall.Kill(os.Getpid(), syscall.SIGSTOP)
}
