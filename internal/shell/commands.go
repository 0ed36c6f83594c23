package shell

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/nursery"
)

// --- 1. create ---

func (s *Shell) cmdCreate() error {
	s.println("Veuillez saisir les informations du Pokémon.")
	c, err := s.askCreature()
	if errors.Is(err, errInputClosed) {
		return err
	}
	if err != nil {
		s.deps.Log.Debug("create aborted", zap.Error(err))
		s.println("Erreur lors de la saisie !")
		return nil
	}
	s.println("Pokémon ajouté !")
	s.deps.Log.Info("creature added", zap.Stringer("id", c.ID), zap.String("name", c.Name))
	return nil
}

func (s *Shell) askCreature() (*component.Creature, error) {
	n := s.deps.Nursery

	nameIn, err := s.prompt("Nom (ou 'aléatoire'): ")
	if err != nil {
		return nil, err
	}
	randomName := IsRandomKeyword(nameIn)
	if !randomName && nameIn == "" {
		s.println("Nom vide !")
		return nil, ErrEmptyName
	}

	s.println("Type : [1] Feu | [2] Eau | [3] Plante | [4] Electrik | [5] Ténèbre")
	kindIn, err := s.prompt("")
	if err != nil {
		return nil, err
	}
	kind, err := ParseKindSelector(kindIn)
	if err != nil {
		s.println("Type inconnu !")
		return nil, err
	}

	s.println("Genre : [1] Mâle | [2] Femelle | [3] Aléatoire")
	genderIn, err := s.prompt("")
	if err != nil {
		return nil, err
	}
	gender, random, err := ParseGenderSelector(genderIn)
	if err != nil {
		s.println("Genre invalide.")
		return nil, err
	}
	if random {
		gender = n.RandomGender()
	}

	if randomName {
		return n.CreateRandom(kind, gender), nil
	}
	return n.Create(nameIn, kind, gender), nil
}

// --- 2. list ---

func (s *Shell) cmdList() {
	list := s.deps.Nursery.List()
	if len(list) == 0 {
		s.println("Aucun Pokémon pour l’instant !")
		return
	}
	for i := range list {
		s.display(&list[i])
	}
}

func (s *Shell) display(c *component.Creature) {
	s.println("─────────────────────────")
	s.println("Informations Pokémon :")
	s.printf("ID: %s\n", c.ID)
	s.printf("Nom: %s\n", c.Name)
	s.printf("Niveau: %d\n", c.Level)
	s.printf("Type: %s\n", c.Kind)
	s.printf("XP: %d\n", c.Exp)
	s.printf("Genre: %s\n", c.Gender)
	s.println("─────────────────────────")
}

// --- 3. train ---

func (s *Shell) cmdTrain() error {
	in, err := s.prompt("Saisir le nombre d'XP à donner (ex: 50) :\n")
	if err != nil {
		return err
	}
	amount := ParseExp(in, s.deps.DefaultExp)
	if _, err := s.deps.Nursery.TrainAll(amount); errors.Is(err, nursery.ErrEmpty) {
		s.println("Pas de Pokémon à entraîner !")
	}
	s.println("Entraînement terminé !")
	s.cmdList()
	return nil
}

// --- 4. pair ---

func (s *Shell) cmdPair() error {
	n := s.deps.Nursery
	if n.Len() < 2 {
		s.println("Il faut au moins 2 Pokémon pour une reproduction !")
		return nil
	}

	s.println("Saisir l'ID du 1er Pokémon :")
	s.cmdList()
	first, err := s.askCreatureID()
	if err != nil {
		return abortUnlessClosed(err)
	}
	s.println("Saisir l'ID du 2nd Pokémon :")
	second, err := s.askCreatureID()
	if err != nil {
		return abortUnlessClosed(err)
	}

	s.println("Vos Pokémon sélectionnés :")
	s.display(first)
	s.display(second)

	baby, err := n.Pair(first, second)
	if errors.Is(err, nursery.ErrPairNotAllowed) {
		s.println("Reproduction impossible (conditions non remplies).")
		return nil
	}
	if err != nil {
		return err
	}
	s.println("Un nouveau Pokémon est apparu !")
	s.display(baby)
	return nil
}

func (s *Shell) askCreatureID() (*component.Creature, error) {
	in, err := s.prompt("")
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(in)
	if err != nil {
		s.println("ID invalide !")
		return nil, ErrInvalidID
	}
	c, ok := s.deps.Nursery.FindByID(id)
	if !ok {
		s.println("Aucun Pokémon ne correspond à cet ID.")
		return nil, nursery.ErrNotFound
	}
	return c, nil
}

// --- 7. save / 8. load ---

func (s *Shell) cmdSave(ctx context.Context) error {
	dst, err := s.prompt("Nom du fichier où sauvegarder : ")
	if err != nil {
		return err
	}
	res, err := s.deps.Nursery.Save(ctx, dst)
	if err != nil {
		s.printf("Erreur de sauvegarde : %v\n", err)
		s.deps.Log.Warn("save failed", zap.String("destination", dst), zap.Error(err))
		return nil
	}
	s.printf("Données enregistrées dans '%s'.\n", res.Destination)
	return nil
}

func (s *Shell) cmdLoad(ctx context.Context) error {
	src, err := s.prompt("Nom du fichier à charger : ")
	if err != nil {
		return err
	}
	res, err := s.deps.Nursery.Load(ctx, src)
	if err != nil {
		s.printf("Erreur de chargement : %v\n", err)
		s.deps.Log.Warn("load failed", zap.String("source", src), zap.Error(err))
		return nil
	}
	switch res.Outcome {
	case nursery.LoadNotFound:
		s.printf("Le fichier '%s' est introuvable.\n", src)
	case nursery.LoadNotEmpty:
		s.println("La nursery n'est pas vide. Videz-là avant de charger un fichier.")
	case nursery.LoadImported:
		s.printf("%d Pokémon importés depuis '%s'.\n", res.Count, src)
	}
	return nil
}

// abortUnlessClosed swallows input errors already reported to the user.
func abortUnlessClosed(err error) error {
	if errors.Is(err, errInputClosed) || errors.Is(err, errLineTooLong) {
		return err
	}
	return nil
}

// --- selector parsing ---

// ParseKindSelector maps "1".."5" to a kind.
func ParseKindSelector(in string) (component.Kind, error) {
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, ErrInvalidKind
	}
	k, ok := component.KindFromSelector(n)
	if !ok {
		return 0, ErrInvalidKind
	}
	return k, nil
}

// ParseGenderSelector maps "1"/"2" to a gender; "3" reports random=true
// and leaves the draw to the nursery's random source.
func ParseGenderSelector(in string) (g component.Gender, random bool, err error) {
	if in == "3" {
		return 0, true, nil
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, false, ErrInvalidGender
	}
	g, ok := component.GenderFromSelector(n)
	if !ok {
		return 0, false, ErrInvalidGender
	}
	return g, false, nil
}

// ParseExp reads a training amount, falling back to def. One leading '+'
// is accepted.
func ParseExp(in string, def uint32) uint32 {
	v, err := strconv.ParseUint(strings.TrimPrefix(in, "+"), 10, 32)
	if err != nil {
		return def
	}
	return uint32(v)
}
