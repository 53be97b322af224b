package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-shuffler/internal/engine"
	"github.com/hazadus/go-shuffler/internal/metadata"
	"github.com/hazadus/go-shuffler/internal/output"
	"github.com/hazadus/go-shuffler/internal/session"
	"github.com/hazadus/go-shuffler/internal/source"
	"github.com/hazadus/go-shuffler/internal/utils"
)

const (
	statusInterval = time.Second
	clearLine      = "\r\033[K"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "play [folder or files...]",
		Short: "Shuffle and play files without the TUI",
		Long: `Shuffle the given folder or files and play them in the terminal.
Keys: space pause, n/→ next, p/← previous, s reshuffle, [ ] seek, 0-9 jump, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.playHeadless(ctx, cmd.OutOrStdout(), args, restore)
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Resume the saved session instead of reshuffling")

	return cmd
}

func (app *Application) playHeadless(ctx context.Context, w io.Writer, args []string, restore bool) error {
	paths := app.sourcePaths(args)
	if len(paths) == 0 {
		return fmt.Errorf("каталог музыки %s не найден, укажите папку или файлы", app.Config.MusicDir)
	}

	sel, err := source.NewSelector(app.Config.Extensions, source.WithLogger(app.Logger)).Select(paths, app.Config.Recursive)
	if err != nil {
		return err
	}

	manager, err := app.sessionManager()
	if err != nil {
		return err
	}
	autosaver := session.NewAutosaver(context.WithoutCancel(ctx), manager)
	defer autosaver.Close()

	factory := output.NewFactory(app.Config.SampleRate, app.Logger)
	eng := engine.New(factory.New,
		engine.WithObserver(autosaver),
		engine.WithLogger(app.Logger),
	)
	defer eng.Close()

	fmt.Fprintf(w, "📁 %s: %d файлов\r\n", sel.Label, len(sel.Handles))

	if restore {
		if _, _, err := manager.Restore(ctx, sel.Handles, eng); err != nil {
			app.Logger.Error("ошибка восстановления сессии", "error", err)
		}
	}
	startPlayback(eng, sel.Handles)

	term := newTerminal(os.Stdin)
	if err := term.makeRaw(); err != nil {
		app.Logger.Warn("не удалось перевести терминал в сырой режим", "error", err)
	}
	defer term.restore()

	visibility, stopWatching := watchVisibility()
	defer stopWatching()

	p := &headlessPlayer{
		engine:   eng,
		events:   factory.Events(),
		handles:  sel.Handles,
		seekStep: time.Duration(app.Config.SeekStep) * time.Second,
		out:      w,
		term:     term,
		logger:   app.Logger,
	}
	return p.run(ctx, readKeys(os.Stdin), visibility)
}

// startPlayback запускает воспроизведение, если восстановление сессии ничего не запустило.
// Если восстановленный файл не открылся, курсор остается на нем
func startPlayback(eng *engine.Engine, handles []source.Handle) {
	if eng.HasOutput() || eng.Cursor().Handle != nil {
		return
	}
	if order := eng.Order(); len(order) > 0 {
		// Сессия восстановлена без текущего файла
		eng.PlayAt(order, 0)
		return
	}
	eng.StartShuffled(handles)
}

// headlessPlayer владеет движком в консольном режиме
type headlessPlayer struct {
	engine   *engine.Engine
	events   <-chan engine.Event
	handles  []source.Handle
	seekStep time.Duration
	out      io.Writer
	term     *terminal
	logger   *slog.Logger

	tagsHandle source.Handle
	tags       metadata.Tags
}

// run обрабатывает события, клавиши и сигналы до выхода или окончания списка
func (p *headlessPlayer) run(ctx context.Context, keys <-chan keyPress, visibility <-chan os.Signal) error {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	p.render()
	for {
		select {
		case <-ctx.Done():
			p.finish("⏹️  Остановлено")
			return nil

		case ev := <-p.events:
			p.engine.Dispatch(ev)

		case k, ok := <-keys:
			if !ok {
				// Ввод закрыт, играем до конца списка
				keys = nil
				continue
			}
			if k.action == actionQuit {
				p.finish("⏹️  Остановлено")
				return nil
			}
			p.handleKey(k)

		case sig := <-visibility:
			p.handleVisibility(sig)

		case <-ticker.C:
		}

		if p.ended() {
			p.finish("✅ Воспроизведение завершено")
			return nil
		}
		p.render()
	}
}

func (p *headlessPlayer) handleKey(k keyPress) {
	switch k.action {
	case actionToggle:
		p.engine.TogglePause()
	case actionNext:
		p.engine.Next()
	case actionPrevious:
		p.engine.Previous()
	case actionShuffle:
		p.engine.StartShuffled(p.handles)
	case actionBack:
		p.engine.SeekBy(-p.seekStep)
	case actionForward:
		p.engine.SeekBy(p.seekStep)
	case actionSeekTo:
		if duration := p.engine.Status().Duration; duration > 0 {
			p.engine.Seek(duration * time.Duration(k.tenths) / 10)
		}
	}
}

// handleVisibility отражает приостановку процесса в движке
func (p *headlessPlayer) handleVisibility(sig os.Signal) {
	if isSuspend(sig) {
		p.engine.Hide()
		p.term.restore()
		if err := suspend(); err != nil {
			p.logger.Warn("не удалось приостановить процесс", "error", err)
		}
		return
	}

	// Оболочка сбрасывает режим терминала, пока процесс остановлен
	if err := p.term.makeRaw(); err != nil {
		p.logger.Warn("не удалось перевести терминал в сырой режим", "error", err)
	}
	p.engine.Show()
}

// ended сообщает, что последний файл доигран и воспроизводить больше нечего
func (p *headlessPlayer) ended() bool {
	order := p.engine.Order()
	cursor := p.engine.Cursor()
	return len(order) > 0 &&
		!p.engine.HasOutput() &&
		!p.engine.Status().Playing &&
		cursor.Handle != nil &&
		cursor.Index == len(order)-1
}

// render перерисовывает строку состояния
func (p *headlessPlayer) render() {
	cursor := p.engine.Cursor()
	status := p.engine.Status()

	name := "—"
	if cursor.Handle != nil {
		if cursor.Handle != p.tagsHandle {
			p.tagsHandle = cursor.Handle
			p.tags = metadata.Read(cursor.Handle)
		}
		name = utils.TruncateString(p.tags.String(), listNameWidth)
	}

	icon := "⏸️"
	if status.Playing {
		icon = "▶️"
	}

	fmt.Fprintf(p.out, "%s%s %s (%d/%d) %s",
		clearLine,
		icon,
		name,
		cursor.Index+1,
		len(p.engine.Order()),
		utils.FormatProgress(status.Current, status.Duration),
	)
}

func (p *headlessPlayer) finish(message string) {
	fmt.Fprintf(p.out, "%s%s\r\n", clearLine, message)
}
