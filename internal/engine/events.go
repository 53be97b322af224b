package engine

import "time"

// Event событие, которое вывод публикует для движка
type Event interface {
	OutputID() OutputID
}

// Completed трек доигран до конца
type Completed struct {
	Output OutputID
}

// Progressed позиция воспроизведения изменилась
type Progressed struct {
	Output   OutputID
	Position time.Duration
}

// MetadataReady стала известна длительность трека
type MetadataReady struct {
	Output   OutputID
	Duration time.Duration
}

// PlayStateChanged вывод перешел в состояние воспроизведения или паузы
type PlayStateChanged struct {
	Output  OutputID
	Playing bool
}

func (e Completed) OutputID() OutputID        { return e.Output }
func (e Progressed) OutputID() OutputID       { return e.Output }
func (e MetadataReady) OutputID() OutputID    { return e.Output }
func (e PlayStateChanged) OutputID() OutputID { return e.Output }
