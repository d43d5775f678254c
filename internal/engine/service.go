package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/content"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers/actions"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/infrastructure/storage"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/network"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/systems"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

// GameService - ядро движка: реестр сессий, диспетчер команд и сборка
// персональных снимков состояния.
type GameService struct {
	Library  *content.Library
	Saves    *storage.SaveStore      // nil - персистентность отключена
	Journals *storage.JournalService // nil - журналы отключены
	Hub      *network.Broadcaster

	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session

	handlers map[domain.ActionType]handlers.HandlerFunc
}

func NewService(cfg Config, lib *content.Library, saves *storage.SaveStore, journals *storage.JournalService) *GameService {
	s := &GameService{
		Library:  lib,
		Saves:    saves,
		Journals: journals,
		Hub:      network.NewBroadcaster(),
		cfg:      cfg,
		sessions: make(map[string]*Session),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionNewGame] = handlers.WithPayload(actions.HandleNewGame)
	s.handlers[domain.ActionChoice] = handlers.WithPayload(actions.HandleChoice)
	s.handlers[domain.ActionPuzzle] = handlers.WithPayload(actions.HandlePuzzle)
	s.handlers[domain.ActionMeditate] = handlers.WithEmptyPayload(actions.HandleMeditate)
	s.handlers[domain.ActionSave] = handlers.WithPayload(actions.HandleSave)
	s.handlers[domain.ActionLoad] = handlers.WithPayload(actions.HandleLoad)
}

// Session возвращает сессию по токену, создавая её при первом обращении.
func (s *GameService) Session(token string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[token]; ok {
		return sess
	}
	sess = newSession(token)
	s.sessions[token] = sess
	logger.Log.WithField("session", token).Info("Session created")
	return sess
}

// SessionCount возвращает количество живых сессий (для debug-эндпоинтов).
func (s *GameService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SessionIDs возвращает идентификаторы живых сессий.
func (s *GameService) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// ProcessCommand принимает команду от внешнего мира (WebSocket), выполняет
// её и рассылает обновленный снимок владельцу сессии.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	sess := s.Session(externalCmd.Token)

	if actionType == domain.ActionUnknown {
		logger.Log.WithFields(logrus.Fields{
			"session": sess.ID,
			"action":  externalCmd.Action,
		}).Warn("Unknown action")
		s.sendError(sess, fmt.Sprintf("unknown action %q", externalCmd.Action))
		return
	}

	result, err := s.executeCommand(sess, actionType, externalCmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"session": sess.ID,
			"action":  actionType.String(),
		}).WithError(err).Warn("Command failed")
		s.sendError(sess, err.Error())
		return
	}

	resp := s.BuildStateFor(sess)
	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		resp.Logs = append(resp.Logs, newLogEntry(result.Msg, msgType))
	}
	if actionType == domain.ActionSave || actionType == domain.ActionLoad {
		resp.Slots = s.listSlots()
	}

	s.Hub.SendTo(sess.ID, *resp)
}

// executeCommand выполняет хендлер под замком сессии и ведет побочную
// бухгалтерию: журнал шагов и автосохранение.
func (s *GameService) executeCommand(sess *Session, action domain.ActionType, payload json.RawMessage) (handlers.Result, error) {
	handler, ok := s.handlers[action]
	if !ok {
		return handlers.Result{}, fmt.Errorf("no handler for %s", action)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx := s.buildContext(sess)
	result, err := handler(ctx, payload)
	if err != nil {
		return handlers.Result{}, err
	}

	// Отвергнутые команды (MsgType ERROR) в журнал не попадают:
	// журнал - хроника свершившихся шагов
	if mutatesState(action) && result.MsgType != "ERROR" {
		sess.appendJournal(storage.JournalEntry{
			Timestamp: time.Now().Unix(),
			Act:       sess.store.Pos.Act,
			Action:    action,
			ChoiceKey: extractChoiceKey(action, payload),
			SceneID:   sess.store.Pos.SceneID,
		})

		if result.ActChanged {
			// Граница акта - точка невозврата, пишем немедленно
			sess.stopAutosave()
			s.persistSession(sess)
		} else {
			sessID := sess.ID
			sess.markDirty(s.cfg.AutosaveDebounce, func() {
				s.autosaveByID(sessID)
			})
		}
	}

	return result, nil
}

// buildContext собирает контекст хендлера. Вызывается под sess.mu.
func (s *GameService) buildContext(sess *Session) handlers.Context {
	var scene *domain.Scene
	if sess.store.Pos.SceneID != "" {
		scene, _ = s.Library.Scene(sess.store.Pos.Act, sess.store.Pos.SceneID)
	}

	var start domain.Position
	if first := s.Library.FirstAct(); first != nil {
		start = domain.Position{Act: first.Number, SceneID: first.Entry}
	}

	ctx := handlers.Context{
		Ctx:   context.Background(),
		Store: sess.store,
		Graph: s.Library,
		Scene: scene,
		Start: start,
		ReplaceStore: func(st *state.Store) {
			sess.store = st
		},
	}
	if s.Saves != nil {
		ctx.Persister = slotPersister{saves: s.Saves}
	}
	return ctx
}

// BuildStateFor создает персональный слепок повествования для сессии.
func (s *GameService) BuildStateFor(sess *Session) *api.ServerResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	resp := &api.ServerResponse{
		Type:      "UPDATE",
		SessionID: sess.ID,
	}

	st := sess.store
	if st.Pos.SceneID == "" {
		// Игра еще не начата: шлем только пустой каркас
		return resp
	}

	scene, ok := s.Library.Scene(st.Pos.Act, st.Pos.SceneID)
	if !ok {
		// Не должно случаться: позиция валидируется на каждом переходе
		logger.WithScene(st.Pos.Act, st.Pos.SceneID).
			WithField("session", sess.ID).
			Error("Session position points to missing scene")
		return resp
	}

	act, _ := s.Library.Act(st.Pos.Act)

	sceneView := &api.SceneView{
		Act:   st.Pos.Act,
		ID:    scene.ID,
		Title: scene.Title,
		Text:  scene.Text,
	}
	if act != nil {
		sceneView.ActTitle = act.Title
	}
	if scene.Puzzle != nil {
		sceneView.PuzzleText = scene.Puzzle.Description
	}
	if scene.Meditation != nil && scene.Meditation.Available {
		sceneView.MeditationAvailable = true
	}
	resp.Scene = sceneView

	// Точный список доступных выборов: клиент только рендерит
	snap := st.Snapshot()
	for _, ch := range systems.AvailableChoices(scene, snap) {
		view := api.ChoiceView{Key: ch.Key, Text: ch.Text}
		if ch.Source != domain.SourceStandard {
			view.Badge = ch.Source.String()
		}
		resp.Choices = append(resp.Choices, view)
	}

	resp.State = buildStateView(st)
	return resp
}

func buildStateView(st *state.Store) *api.StateView {
	view := &api.StateView{
		Nakshatra:      st.Profile.Nakshatra,
		Gana:           st.Profile.Gana,
		Attributes:     make(map[string]float64, len(st.Player.Attributes)),
		Inventory:      make([]string, len(st.Player.Inventory)),
		Karma:          st.Player.Karma,
		DharmicProfile: make(map[string]float64, len(st.Player.DharmicProfile)),
		Progression: api.ProgressionView{
			QuestsCompleted: st.Player.Progression.QuestsCompleted,
			PuzzlesSolved:   st.Player.Progression.PuzzlesSolved,
			ChoicesMade:     st.Player.Progression.ChoicesMade,
		},
	}

	// Копии, чтобы DTO не делил память с живым стором
	for k, v := range st.Player.Attributes {
		view.Attributes[k] = v
	}
	copy(view.Inventory, st.Player.Inventory)
	for k, v := range st.Player.DharmicProfile {
		view.DharmicProfile[k] = v
	}
	for _, item := range st.Player.SpecialItems {
		view.SpecialItems = append(view.SpecialItems, api.SpecialItemView{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
		})
	}

	return view
}

// sendError шлет клиенту снимок с сообщением об ошибке. Состояние при этом
// тоже отправляется: клиент не должен зависать на устаревшем виде.
func (s *GameService) sendError(sess *Session, msg string) {
	resp := s.BuildStateFor(sess)
	resp.Type = "ERROR"
	resp.Logs = append(resp.Logs, newLogEntry(msg, "ERROR"))
	s.Hub.SendTo(sess.ID, *resp)
}

// autosaveByID - колбек дебаунса: сессия могла успеть умереть, ищем заново.
func (s *GameService) autosaveByID(id string) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.persistSession(sess)
}

// persistSession пишет автосохранение сессии. Вызывается под sess.mu.
func (s *GameService) persistSession(sess *Session) {
	if s.Saves == nil {
		return
	}
	if sess.store.Pos.SceneID == "" {
		return // нечего сохранять до начала игры
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slot := "autosave_" + sess.ID
	if err := s.Saves.Save(ctx, slot, sess.store); err != nil {
		logger.Log.WithField("session", sess.ID).WithError(err).Error("Autosave failed")
		return
	}
	logger.Log.WithField("session", sess.ID).Debug("Autosave written")
}

// Shutdown дописывает автосохранения и журналы всех живых сессий.
func (s *GameService) Shutdown() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		sess.stopAutosave()
		s.persistSession(sess)
		if s.Journals != nil && len(sess.journal.Entries) > 0 {
			if _, err := s.Journals.Save(&sess.journal); err != nil {
				logger.Log.WithField("session", sess.ID).WithError(err).Error("Journal write failed")
			}
		}
		sess.mu.Unlock()
	}
}

func (s *GameService) listSlots() []api.SlotView {
	if s.Saves == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	infos, err := s.Saves.List(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Slot listing failed")
		return nil
	}

	out := make([]api.SlotView, 0, len(infos))
	for _, info := range infos {
		out = append(out, api.SlotView{Slot: info.Slot, UpdatedAt: info.UpdatedAt.Unix()})
	}
	return out
}

// slotPersister адаптирует SaveStore к контракту хендлеров.
type slotPersister struct {
	saves *storage.SaveStore
}

func (p slotPersister) SaveSlot(ctx context.Context, slot string, st *state.Store) error {
	return p.saves.Save(ctx, slot, st)
}

func (p slotPersister) LoadSlot(ctx context.Context, slot string) (*state.Store, error) {
	return p.saves.Load(ctx, slot)
}

// mutatesState перечисляет команды, после которых есть что сохранять.
func mutatesState(action domain.ActionType) bool {
	switch action {
	case domain.ActionNewGame, domain.ActionChoice, domain.ActionPuzzle,
		domain.ActionMeditate, domain.ActionLoad:
		return true
	}
	return false
}

// extractChoiceKey достает ключ выбора для журнала; для остальных команд пусто.
func extractChoiceKey(action domain.ActionType, payload json.RawMessage) string {
	if action != domain.ActionChoice || len(payload) == 0 {
		return ""
	}
	var p api.ChoicePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	return p.Key
}

func newLogEntry(text, logType string) api.LogEntry {
	return api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}
}
