/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package api is the HTTP control server. It exposes the rfdc client of
// every configured board under /api.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

type ApiServer struct {
	*config.Config
	*mux.Router
	boards  map[string]*Board
	names   []string
	journal *Journal
}

// NewApiServer creates clients for all configured boards and opens the journal
func NewApiServer(cfg *config.Config) (*ApiServer, error) {
	var boards []*Board
	for _, boardCfg := range cfg.Boards {
		board, err := NewBoard(boardCfg)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	names := make([]string, 0, len(boards))
	for _, board := range boards {
		names = append(names, board.Name)
	}
	journal, err := NewJournal(cfg.StatePath, names)
	if err != nil {
		return nil, err
	}
	return NewApiServerWithBoards(cfg, boards, journal), nil
}

// NewApiServerWithBoards creates a server over already built boards, journal may be nil
func NewApiServerWithBoards(cfg *config.Config, boards []*Board, journal *Journal) *ApiServer {
	s := &ApiServer{
		Config:  cfg,
		boards:  map[string]*Board{},
		journal: journal,
	}
	for _, board := range boards {
		s.boards[board.Name] = board
		s.names = append(s.names, board.Name)
	}
	s.configureRouter()
	return s
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(log.PrintlnLogger{}))
	return recovery(handlers.LoggingHandler(log.Writer(log.InfoLevel), s.Router))
}

func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s", s.Config.Address())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.Address(),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) Close() {
	if s.journal != nil {
		s.journal.Close()
	}
}

const (
	boardVar   = "{board}"
	kindVar    = "{kind:adc|dac}"
	tileVar    = "{tile:[0-9]+}"
	blockVar   = "{block:[0-9]+}"
	addressVar = kindVar + "/" + tileVar + "/" + blockVar
)

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/boards", s.handleBoards()).Methods("GET")
	subRouter.HandleFunc("/field", s.handleFields()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/field/{field}/"+addressVar, s.handleGet()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/field/{field}/"+addressVar, s.handleSet()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/scan/"+kindVar+"/{field}", s.handleScan()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/status", s.handleStatus()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/event/"+addressVar, s.handleEvent()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/coeffs/"+tileVar+"/"+blockVar, s.handleDisableCoeffs()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/init", s.handleInit()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/mts", s.handleRunMTS()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/mts", s.handleMTSReport()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/nco", s.handleUpdateNCO()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/mixer", s.handleMixerStatus()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/mixer/"+addressVar, s.handleMixer()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/clk", s.handleClkFiles()).Methods("GET")
	subRouter.HandleFunc("/"+boardVar+"/clk", s.handleClkUpload()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/clk/{name}", s.handleClkDelete()).Methods("DELETE")
	subRouter.HandleFunc("/"+boardVar+"/progpll", s.handleProgPLL()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/dto", s.handleApplyDTO()).Methods("POST")
	subRouter.HandleFunc("/"+boardVar+"/journal", s.handleJournal()).Methods("GET")
}

func (s *ApiServer) getBoard(name string) (*Board, error) {
	board, ok := s.boards[name]
	if !ok {
		return nil, config.ErrBoardNotFound{Name: name}
	}
	return board, nil
}

func httpError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		log.Error("%s", err)
	}
	http.Error(w, err.Error(), code)
}

func respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Encoding response: %s", err)
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil && err != io.EOF {
		return ErrBadRequest{What: err.Error()}
	}
	return nil
}

// target parses kind, tile and block route variables
func target(vars map[string]string) (rfdc.Target, error) {
	kind, err := rfdc.ParseConverterKind(vars["kind"])
	if err != nil {
		return rfdc.Target{}, err
	}
	tile, err := strconv.Atoi(vars["tile"])
	if err != nil {
		return rfdc.Target{}, ErrBadRequest{What: err.Error()}
	}
	block, err := strconv.Atoi(vars["block"])
	if err != nil {
		return rfdc.Target{}, ErrBadRequest{What: err.Error()}
	}
	t := rfdc.NewTarget(kind, tile, block)
	return t, t.Validate()
}

// boardTarget resolves the board and the target of routes carrying an address
func (s *ApiServer) boardTarget(r *http.Request) (*Board, rfdc.Target, error) {
	vars := mux.Vars(r)
	board, err := s.getBoard(vars["board"])
	if err != nil {
		return nil, rfdc.Target{}, err
	}
	t, err := target(vars)
	if err != nil {
		return nil, rfdc.Target{}, err
	}
	return board, t, nil
}

// jsonArgs turns decoded JSON values into request arguments, integral
// numbers become int64 so they are not sent as floats
func jsonArgs(values []interface{}) ([]interface{}, error) {
	args := make([]interface{}, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case json.Number:
			if i, err := v.Int64(); err == nil {
				args = append(args, i)
				continue
			}
			f, err := v.Float64()
			if err != nil {
				return nil, ErrBadRequest{What: err.Error()}
			}
			args = append(args, f)
		case string:
			args = append(args, v)
		case bool:
			args = append(args, v)
		default:
			return nil, ErrBadRequest{What: "arguments must be numbers or strings"}
		}
	}
	return args, nil
}

func queryArgs(r *http.Request) []interface{} {
	var args []interface{}
	for _, arg := range r.URL.Query()["arg"] {
		args = append(args, arg)
	}
	return args
}

func (s *ApiServer) handleBoards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards := make([]*BoardInfo, 0, len(s.names))
		for _, name := range s.names {
			board := s.boards[name]
			boards = append(boards, &BoardInfo{Name: board.Name, Transport: board.Transport, URL: board.URL})
		}
		respond(w, boards)
	}
}

func (s *ApiServer) handleFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, rfdc.Fields())
	}
}

func (s *ApiServer) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, t, err := s.boardTarget(r)
		if err != nil {
			httpError(w, err)
			return
		}
		field := mux.Vars(r)["field"]
		log.Debug("Handling get request: board: %s field: %s target: %s", board.Name, field, t)
		result, err := board.Client.Get(t, field, queryArgs(r)...)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, result)
	}
}

func (s *ApiServer) handleSet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, t, err := s.boardTarget(r)
		if err != nil {
			httpError(w, err)
			return
		}
		body := &SetBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		args, err := jsonArgs(body.Args)
		if err != nil {
			httpError(w, err)
			return
		}
		field := mux.Vars(r)["field"]
		log.Debug("Handling set request: board: %s field: %s target: %s args: %v", board.Name, field, t, args)
		result, err := board.Client.Set(t, field, args...)
		if err != nil {
			httpError(w, err)
			return
		}
		if s.journal != nil && !result.Disabled {
			entry := &Entry{Field: field, Target: t, Args: args, Readback: result}
			if err := s.journal.Append(board.Name, entry); err != nil {
				log.Error("Journal append: %s", err)
			}
		}
		respond(w, result)
	}
}

func (s *ApiServer) handleScan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		board, err := s.getBoard(vars["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		kind, err := rfdc.ParseConverterKind(vars["kind"])
		if err != nil {
			httpError(w, err)
			return
		}
		entries, err := board.Client.Scan(kind, vars["field"], queryArgs(r)...)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, entries)
	}
}

func (s *ApiServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		status, err := board.Client.Status()
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, status)
	}
}

func (s *ApiServer) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, t, err := s.boardTarget(r)
		if err != nil {
			httpError(w, err)
			return
		}
		body := &EventBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		if err := board.Client.UpdateEvent(t, body.Event); err != nil {
			httpError(w, err)
			return
		}
	}
}

func (s *ApiServer) handleDisableCoeffs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		vars["kind"] = rfdc.ADC.String()
		board, err := s.getBoard(vars["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		t, err := target(vars)
		if err != nil {
			httpError(w, err)
			return
		}
		body := &CoeffsBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		if err := board.Client.DisableUserCoeffs(t, body.CalBlock); err != nil {
			httpError(w, err)
			return
		}
	}
}

func (s *ApiServer) handleInit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &InitBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		if err := board.Client.Init(body.LMKFile, body.LMXFile, body.Upload); err != nil {
			httpError(w, err)
			return
		}
	}
}

func (s *ApiServer) handleRunMTS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &MTSBody{TileMask: 0b1111}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		report, err := board.RunMTS(body.TileMask)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &Lines{Lines: report})
	}
}

func (s *ApiServer) handleMTSReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &Lines{Lines: board.MTSReport()})
	}
}

func (s *ApiServer) handleUpdateNCO() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &MaskBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		lines, err := board.Client.UpdateNCOMTS(body.AdcMask, body.DacMask, body.Freq)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &Lines{Lines: lines})
	}
}

func (s *ApiServer) handleMixerStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &MaskBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		reports, err := board.Client.ReportMixerStatus(body.AdcMask, body.DacMask)
		if err != nil {
			httpError(w, err)
			return
		}
		if reports == nil {
			reports = []rfdc.MixerReport{}
		}
		respond(w, reports)
	}
}

func (s *ApiServer) handleMixer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, t, err := s.boardTarget(r)
		if err != nil {
			httpError(w, err)
			return
		}
		lines, err := board.Client.ReportMixer(t)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &Lines{Lines: lines})
	}
}

func (s *ApiServer) handleClkFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		files, err := board.Client.ClkFiles()
		if err != nil {
			httpError(w, err)
			return
		}
		if files == nil {
			files = []string{}
		}
		respond(w, files)
	}
}

func (s *ApiServer) handleClkUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &ClkUploadBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		uploaded, err := board.Client.UploadClkFile(body.Path, body.Force)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &UploadResult{Uploaded: uploaded})
	}
}

func (s *ApiServer) handleClkDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		board, err := s.getBoard(vars["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		if err := board.Client.DelClkFile(vars["name"]); err != nil {
			httpError(w, err)
			return
		}
	}
}

func (s *ApiServer) handleProgPLL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &ProgPLLBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		if err := board.Client.ProgPLL(body.PLL, body.File, body.Upload); err != nil {
			httpError(w, err)
			return
		}
	}
}

func (s *ApiServer) handleApplyDTO() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.getBoard(mux.Vars(r)["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		body := &DTOBody{}
		if err := decodeBody(r, body); err != nil {
			httpError(w, err)
			return
		}
		applied, err := board.Client.ApplyDTO(body.Path)
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, &DTOResult{Applied: applied})
	}
}

func (s *ApiServer) handleJournal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if _, err := s.getBoard(vars["board"]); err != nil {
			httpError(w, err)
			return
		}
		if s.journal == nil {
			httpError(w, ErrUnknownOperation{What: "journal is not enabled"})
			return
		}
		entries, err := s.journal.List(vars["board"])
		if err != nil {
			httpError(w, err)
			return
		}
		respond(w, entries)
	}
}
