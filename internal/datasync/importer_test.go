package datasync_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dearbones/dearbones/internal/audio"
	"github.com/dearbones/dearbones/internal/datasync"
	"github.com/dearbones/dearbones/internal/deckcsv"
	"github.com/dearbones/dearbones/internal/flashcard"
	mock_datasync "github.com/dearbones/dearbones/internal/mocks/datasync"
	mock_flashcard "github.com/dearbones/dearbones/internal/mocks/flashcard"
	"github.com/dearbones/dearbones/internal/testutil"
)

type importFixture struct {
	store    *testutil.MemoryStore
	audio    *audio.Manager
	out      *bytes.Buffer
	importer *datasync.Importer
	baseDir  string
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	tmp := t.TempDir()
	store := testutil.NewMemoryStore()
	manager := audio.NewManager(filepath.Join(tmp, "audio"))
	out := &bytes.Buffer{}
	return &importFixture{
		store:    store,
		audio:    manager,
		out:      out,
		importer: datasync.NewImporter(store.Decks(), store.Cards(), manager, out),
		baseDir:  filepath.Join(tmp, "csv"),
	}
}

func (f *importFixture) createDeck(t *testing.T, name string) *flashcard.Deck {
	t.Helper()
	deck := &flashcard.Deck{Name: name, Emoji: "🧪"}
	require.NoError(t, f.store.Decks().Create(context.Background(), deck))
	return deck
}

func TestImporter_Import(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		target       string
		wantResult   datasync.ImportResult
		wantFronts   []string
		wantProgress []string
	}{
		{
			name:    "rows name their decks",
			content: "Deck Name,Deck Emoji,Front,Back,Tags\nSpanish,🇪🇸,hola,hello,greeting; basic\nFrench,,bonjour,hello,\n",
			wantResult: datasync.ImportResult{
				Success:      true,
				Imported:     2,
				Errors:       []string{},
				DecksCreated: []string{"Spanish", "French"},
			},
			wantFronts:   []string{"hola", "bonjour"},
			wantProgress: []string{`[NEW DECK]  "Spanish"`, `[IMPORTED]  text "hola"`, `[NEW DECK]  "French"`},
		},
		{
			name:    "one bad row among five is skipped",
			content: "Deck Name,Front,Back\nMath,1+1,2\nMath,2+2,4\nMath,3+3,\nMath,4+4,8\nMath,5+5,10\n",
			wantResult: datasync.ImportResult{
				Success:      true,
				Imported:     4,
				Errors:       []string{"Row 3: back is required"},
				DecksCreated: []string{"Math"},
			},
			wantFronts:  []string{"1+1", "2+2", "4+4", "5+5"},
			wantProgress: []string{"[SKIP]  Row 3: back is required"},
		},
		{
			name: "rows failing their card type are skipped",
			content: "Deck Name,Type,Front,Front Audio File,Back\n" +
				"Lang,audio,,,missing audio\n" +
				"Lang,mixed,,x.mp3,missing text\n" +
				"Lang,video,q,,bad type\n" +
				"Lang,text,,,missing front\n" +
				"Lang,TEXT,ok,,fine\n",
			wantResult: datasync.ImportResult{
				Success:  true,
				Imported: 1,
				Errors: []string{
					"Row 1: front audio file is required for audio cards",
					"Row 2: front is required for mixed cards",
					`Row 3: invalid card type "video": must be one of text, audio, mixed`,
					"Row 4: front is required for text cards",
				},
				DecksCreated: []string{"Lang"},
			},
			wantFronts: []string{"ok"},
		},
		{
			name:    "rows without a deck and no target",
			content: "Front,Back\nq,a\n",
			wantResult: datasync.ImportResult{
				Success:      true,
				Errors:       []string{"Row 1: deck name is required when no target deck is selected"},
				DecksCreated: []string{},
			},
		},
		{
			name:    "quoted fields survive",
			content: "Deck Name,Front,Back\nQuotes,\"He said \"\"hi\"\", and left\n\",\"a,b\"\n",
			wantResult: datasync.ImportResult{
				Success:      true,
				Imported:     1,
				Errors:       []string{},
				DecksCreated: []string{"Quotes"},
			},
			wantFronts: []string{"He said \"hi\", and left"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(t)
			ctx := context.Background()

			got, err := f.importer.Import(ctx, tt.content, f.baseDir, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, *got)

			cards, err := f.store.Cards().FindAll(ctx)
			require.NoError(t, err)
			var fronts []string
			for _, c := range cards {
				fronts = append(fronts, c.FrontText())
			}
			assert.Equal(t, tt.wantFronts, fronts)

			for _, line := range tt.wantProgress {
				assert.Contains(t, f.out.String(), line)
			}
		})
	}
}

func TestImporter_Import_SameDeckNameCreatesOneDeck(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	var sb strings.Builder
	sb.WriteString("Deck Name,Front,Back\n")
	for i := range 10 {
		fmt.Fprintf(&sb, "Chemistry,element %d,answer %d\n", i, i)
	}

	got, err := f.importer.Import(ctx, sb.String(), f.baseDir, "")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Imported)
	assert.Equal(t, []string{"Chemistry"}, got.DecksCreated)

	again, err := f.importer.Import(ctx, sb.String(), f.baseDir, "")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Imported)
	assert.Empty(t, again.DecksCreated)

	decks, err := f.store.Decks().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "Chemistry", decks[0].Name)
	assert.Equal(t, datasync.ImportedDeckDescription, decks[0].Description)
	assert.Equal(t, flashcard.DefaultDeckEmoji, decks[0].Emoji)
	assert.Equal(t, 20, decks[0].CardCount)
}

func TestImporter_Import_TargetDeck(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()
	target := f.createDeck(t, "Inbox")

	content := "Deck Name,Front,Back,Difficulty,Interval,Study Count\n" +
		"Other,q1,a1,abc,0,-3\n" +
		"Other,q2,a2,2.5,7.9,4\n"
	got, err := f.importer.Import(ctx, content, f.baseDir, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Imported)
	assert.Empty(t, got.DecksCreated)

	cards, err := f.store.Cards().FindByDeck(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, flashcard.Scheduling{Difficulty: 0, Interval: 1, EaseFactor: 2.5}, cards[0].Scheduling)
	assert.Equal(t, 0, cards[0].StudyCount)
	assert.Equal(t, flashcard.Scheduling{Difficulty: 2.5, Interval: 7, EaseFactor: 2.5}, cards[1].Scheduling)
	assert.Equal(t, 4, cards[1].StudyCount)

	other, err := f.store.Decks().FindByName(ctx, "Other")
	require.NoError(t, err)
	assert.Nil(t, other)

	deck, err := f.store.Decks().FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deck.CardCount)
}

func TestImporter_Import_FileErrors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		target     string
		wantFormat bool
		wantErrIs  error
	}{
		{name: "missing back column", content: "Front,Answer\nq,a\n", wantFormat: true},
		{name: "header only", content: "Front,Back\n", wantFormat: true},
		{name: "unknown target deck", content: "Front,Back\nq,a\n", target: "nope", wantErrIs: flashcard.ErrDeckNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(t)
			ctx := context.Background()

			got, err := f.importer.Import(ctx, tt.content, f.baseDir, tt.target)
			require.Error(t, err)
			assert.Nil(t, got)
			if tt.wantFormat {
				var formatErr *deckcsv.FormatError
				assert.True(t, errors.As(err, &formatErr))
			}
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}

			cards, err := f.store.Cards().FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, cards)
		})
	}
}

func TestImporter_Import_Cancelled(t *testing.T) {
	f := newImportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.importer.Import(ctx, "Deck Name,Front,Back\nA,q,a\n", f.baseDir, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImporter_ImportFile_Audio(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()
	testutil.WriteFile(t, f.baseDir, "sounds/hola.wav", testutil.WAVHeader())
	path := testutil.WriteFile(t, f.baseDir, "deck.csv", []byte(
		"Deck Name,Type,Front,Front Audio File,Front Audio Name,Back\n"+
			"Spanish,audio,,sounds/hola.wav,,hello\n"+
			"Spanish,mixed,Listen,sounds/hola.wav,Greeting,hello\n"+
			"Spanish,audio,,sounds/missing.mp3,,gone\n"))

	got, err := f.importer.ImportFile(ctx, path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Imported)
	require.Len(t, got.Errors, 1)
	assert.True(t, strings.HasPrefix(got.Errors[0], "Row 3: failed to import audio file sounds/missing.mp3: audio file not found"))

	cards, err := f.store.Cards().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	first, ok := cards[0].FrontAudio()
	require.True(t, ok)
	assert.Equal(t, "hola.wav", first.Name)
	assert.True(t, f.audio.AudioFileExists(first.Path))
	assert.NotEqual(t, "sounds/hola.wav", first.Path)

	second, ok := cards[1].FrontAudio()
	require.True(t, ok)
	assert.Equal(t, "Greeting", second.Name)
	assert.Equal(t, "Listen", cards[1].FrontText())
	assert.NotEqual(t, first.Path, second.Path, "every row gets its own copy")
}

func TestImporter_Import_AudioFallsBackToPrivateStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := testutil.NewMemoryStore()
	audioImporter := mock_datasync.NewMockAudioImporter(ctrl)
	baseDir := t.TempDir()
	audioImporter.EXPECT().AudioFileExists("1700000000000_abc.mp3").Return(true)
	audioImporter.EXPECT().GetAudioFilePath("1700000000000_abc.mp3").Return("/private/1700000000000_abc.mp3")
	audioImporter.EXPECT().CopyAudioFile(gomock.Any(), "/private/1700000000000_abc.mp3").
		Return(audio.Asset{ID: "1800000000000_def", InternalPath: "1800000000000_def.mp3"}, nil)

	importer := datasync.NewImporter(store.Decks(), store.Cards(), audioImporter, nil)
	got, err := importer.Import(context.Background(),
		"Deck Name,Type,Front Audio File,Front Audio Name,Back\nSpanish,audio,1700000000000_abc.mp3,hola,hello\n", baseDir, "")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Imported)

	cards, err := store.Cards().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, flashcard.AudioFront{Audio: flashcard.AudioRef{Path: "1800000000000_def.mp3", Name: "hola"}}, cards[0].Front)
}

func TestImporter_Import_AudioCopyFailureSkipsRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := testutil.NewMemoryStore()
	baseDir := t.TempDir()
	src := testutil.WriteFile(t, baseDir, "a.mp3", []byte("ID3"))

	audioImporter := mock_datasync.NewMockAudioImporter(ctrl)
	audioImporter.EXPECT().CopyAudioFile(gomock.Any(), src).Return(audio.Asset{}, errors.New("disk full"))

	importer := datasync.NewImporter(store.Decks(), store.Cards(), audioImporter, nil)
	got, err := importer.Import(context.Background(),
		"Deck Name,Type,Front Audio File,Back\nSpanish,audio,a.mp3,hello\nSpanish,text,,plain\n", baseDir, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Imported)
	assert.Equal(t, []string{
		"Row 1: failed to import audio file a.mp3: disk full",
		"Row 2: front is required for text cards",
	}, got.Errors)

	cards, err := store.Cards().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestImporter_Import_CardCreateFailureRemovesCopiedAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "csv")
	testutil.WriteFile(t, baseDir, "hola.wav", testutil.WAVHeader())

	store := testutil.NewMemoryStore()
	deck := &flashcard.Deck{Name: "Spanish"}
	require.NoError(t, store.Decks().Create(context.Background(), deck))

	cards := mock_flashcard.NewMockCardRepository(ctrl)
	cards.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	manager := audio.NewManager(filepath.Join(tmp, "audio"))
	importer := datasync.NewImporter(store.Decks(), cards, manager, nil)
	got, err := importer.Import(context.Background(),
		"Type,Front Audio File,Back\naudio,hola.wav,hello\n", baseDir, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Imported)
	assert.Equal(t, []string{"Row 1: failed to create card: database is locked"}, got.Errors)

	entries, err := os.ReadDir(manager.Directory())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImporter_Import_CardCreateFailureKeepsRowErrorWhenCleanupFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := testutil.NewMemoryStore()
	deck := &flashcard.Deck{Name: "Spanish"}
	require.NoError(t, store.Decks().Create(context.Background(), deck))
	baseDir := t.TempDir()
	src := testutil.WriteFile(t, baseDir, "a.mp3", []byte("ID3"))

	audioImporter := mock_datasync.NewMockAudioImporter(ctrl)
	cards := mock_flashcard.NewMockCardRepository(ctrl)
	gomock.InOrder(
		audioImporter.EXPECT().CopyAudioFile(gomock.Any(), src).
			Return(audio.Asset{ID: "1_x", InternalPath: "1_x.mp3"}, nil),
		cards.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("database is locked")),
		audioImporter.EXPECT().DeleteAudioFile(gomock.Any(), "1_x.mp3").Return(errors.New("permission denied")),
	)

	importer := datasync.NewImporter(store.Decks(), cards, audioImporter, nil)
	got, err := importer.Import(context.Background(),
		"Type,Front Audio File,Back\naudio,a.mp3,hello\n", baseDir, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Row 1: failed to create card: database is locked"}, got.Errors)
}

func TestImporter_Import_QuotedBlankBackIsRejected(t *testing.T) {
	f := newImportFixture(t)
	testutil.WriteFile(t, f.baseDir, "hola.wav", testutil.WAVHeader())

	got, err := f.importer.Import(context.Background(),
		"Deck Name,Type,Front Audio File,Back\nSpanish,audio,hola.wav,\"   \"\n", f.baseDir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Row 1: back is required"}, got.Errors)
	assert.False(t, f.audio.AudioFileExists("hola.wav"))

	_, err = os.Stat(f.audio.Directory())
	assert.True(t, errors.Is(err, os.ErrNotExist), "no audio is copied for a rejected row")
}

func TestImporter_ImportWithPicker(t *testing.T) {
	tests := []struct {
		name      string
		pickErr   error
		want      *datasync.ImportResult
		wantError bool
	}{
		{name: "dialog dismissed", pickErr: datasync.ErrCancelled, want: &datasync.ImportResult{Cancelled: true}},
		{name: "dialog failed", pickErr: errors.New("no display"), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			picker := mock_datasync.NewMockPathPicker(ctrl)
			picker.EXPECT().PickOpen(gomock.Any()).Return("", tt.pickErr)

			store := testutil.NewMemoryStore()
			importer := datasync.NewImporter(store.Decks(), store.Cards(), mock_datasync.NewMockAudioImporter(ctrl), nil)

			got, err := importer.ImportWithPicker(context.Background(), picker, "")
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImporter_ImportWithPicker_ReadsPickedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := testutil.WriteFile(t, t.TempDir(), "cards.csv", []byte("Deck Name,Front,Back\nPicked,q,a\n"))
	picker := mock_datasync.NewMockPathPicker(ctrl)
	picker.EXPECT().PickOpen(gomock.Any()).Return(path, nil)

	store := testutil.NewMemoryStore()
	importer := datasync.NewImporter(store.Decks(), store.Cards(), mock_datasync.NewMockAudioImporter(ctrl), nil)

	got, err := importer.ImportWithPicker(context.Background(), picker, "")
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, []string{"Picked"}, got.DecksCreated)
}
