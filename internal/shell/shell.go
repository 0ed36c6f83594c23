// Package shell is the interactive front end of the nursery: it prints the
// menu, reads answers, validates selectors and calls into the nursery.
// All user-facing text is French, like the save-file header.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/core/event"
	"github.com/l1jgo/nursery/internal/nursery"
)

var (
	ErrInvalidKind   = errors.New("invalid kind selector")
	ErrInvalidGender = errors.New("invalid gender selector")
	ErrInvalidID     = errors.New("invalid creature id")
	ErrEmptyName     = errors.New("empty name")

	// errInputClosed ends the loop when stdin runs out mid-command.
	errInputClosed = errors.New("input closed")
	// errLineTooLong aborts the current command; the loop goes on.
	errLineTooLong = errors.New("input line too long")
)

// maxLineLen bounds one answer. Longer lines are discarded up to their newline.
const maxLineLen = 1 << 20

// Deps bundles everything a Shell needs.
type Deps struct {
	Nursery    *nursery.Nursery
	Bus        *event.Bus // flushed after every command; may be nil
	DefaultExp uint32     // training amount when the typed value does not parse
	Log        *zap.Logger
}

// Shell runs the numbered-menu command loop.
type Shell struct {
	in   *bufio.Reader
	out  io.Writer
	deps Deps
}

func New(in io.Reader, out io.Writer, deps Deps) *Shell {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Shell{in: bufio.NewReader(in), out: out, deps: deps}
}

// Run loops until the quit command or the end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.println("Bienvenue dans la Nursery Pokémon !")
	s.println("Vous pouvez gérer un élevage, entraîner et reproduire vos Pokémon.")
	s.println("─────────────────────────────────────")

	for {
		s.printMenu()
		choice, err := s.readLine()
		switch {
		case errors.Is(err, errInputClosed):
			return nil
		case errors.Is(err, errLineTooLong):
			s.println("Choix invalide, réessayez.")
			continue
		case err != nil:
			return err
		}

		quit, err := s.dispatch(ctx, choice)
		s.flushEvents()
		switch {
		case errors.Is(err, errInputClosed):
			return nil
		case errors.Is(err, errLineTooLong):
			s.println("Saisie trop longue, commande annulée.")
			continue
		case err != nil:
			return err
		}
		if quit {
			return nil
		}
	}
}

// dispatch runs one menu command. Command-level failures are reported to
// the user and swallowed; only a closed input, an overlong answer or ctx
// cancellation escape.
func (s *Shell) dispatch(ctx context.Context, choice string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	switch choice {
	case "1":
		return false, s.cmdCreate()
	case "2":
		s.cmdList()
	case "3":
		return false, s.cmdTrain()
	case "4":
		return false, s.cmdPair()
	case "5":
		s.println("Tri par niveau (descendant)...")
		s.deps.Nursery.SortByLevelDesc()
		s.cmdList()
	case "6":
		s.println("Tri par type (ordre alphabétique)...")
		s.deps.Nursery.SortByKindName()
		s.cmdList()
	case "7":
		return false, s.cmdSave(ctx)
	case "8":
		return false, s.cmdLoad(ctx)
	case "9":
		s.println("Fermeture du programme. À bientôt !")
		return true, nil
	default:
		s.println("Choix invalide, réessayez.")
	}
	return false, nil
}

func (s *Shell) printMenu() {
	s.println("")
	s.println("~ Système d'Élevage (Nursery) ~")
	s.println("1. Ajouter un Pokémon")
	s.println("2. Afficher tous les Pokémon")
	s.println("3. Entraîner tous les Pokémon")
	s.println("4. Reproduction (2 Pokémon)")
	s.println("5. Trier par niveau décroissant")
	s.println("6. Trier par type alphabétique")
	s.println("7. Sauvegarder dans un fichier")
	s.println("8. Charger depuis un fichier")
	s.println("9. Quitter")
	s.print("Votre sélection : ")
}

// --- I/O helpers ---

func (s *Shell) flushEvents() {
	bus := s.deps.Bus
	if bus == nil {
		return
	}
	if n := bus.Pending(); n > 0 {
		s.deps.Log.Debug("dispatching events", zap.Int("count", n))
		bus.Flush()
	}
}

// readLine returns the next trimmed line. End of input gives errInputClosed;
// a line over maxLineLen is consumed and reported as errLineTooLong.
func (s *Shell) readLine() (string, error) {
	var (
		buf     []byte
		read    int
		tooLong bool
	)
	for {
		chunk, err := s.in.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLen {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if read == 0 {
				return "", errInputClosed
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		break
	}
	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimSpace(string(buf)), nil
}

// prompt prints a question and reads the answer.
func (s *Shell) prompt(question string) (string, error) {
	if question != "" {
		s.print(question)
	}
	return s.readLine()
}

func (s *Shell) print(a ...any) {
	fmt.Fprint(s.out, a...)
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
