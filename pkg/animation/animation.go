package animation

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"f1standings/pkg/caster"
	"f1standings/pkg/chart"
	"f1standings/pkg/model"
	"f1standings/pkg/playback"
	"f1standings/pkg/resources"
	"f1standings/pkg/standings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	MessagePlay  = "play"
	MessageScrub = "scrub"
	MessageStop  = "stop"
	MessageFrame = "frame"
	MessageDone  = "done"
	MessageError = "error"
)

var upgrader = websocket.Upgrader{} // use default options

// ClientMessage is what the page sends over the websocket.
type ClientMessage struct {
	Type  string `json:"type"`
	Round int    `json:"round,omitempty"`
}

// ServerMessage is what the page receives over the websocket.
type ServerMessage struct {
	Type     string `json:"type"`
	Round    int    `json:"round"`
	Total    int    `json:"total"`
	SVG      string `json:"svg,omitempty"`
	Canceled bool   `json:"canceled,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Settings struct {
	Season   *standings.Season
	Roster   model.Roster
	Chart    chart.Options
	Interval time.Duration
	// Photos holds the cached driver photos. Nil links the remote images.
	Photos resources.Photos
}

type Animation struct {
	settings Settings
	player   *playback.Player
	in       caster.Caster[ClientMessage]
	out      caster.Caster[ServerMessage]
	frames   sync.Map
}

// NewAnimation registers the page, the websocket and the chart endpoints on r.
func NewAnimation(r *mux.Router, settings Settings) *Animation {
	a := &Animation{
		settings: settings,
		player:   playback.NewPlayer(settings.Interval),
		in:       caster.JSONCaster[ClientMessage]{},
		out:      caster.JSONCaster[ServerMessage]{},
	}
	a.addHandlers(r)
	return a
}

func (a *Animation) addHandlers(r *mux.Router) {
	r.HandleFunc("/", a.pageHandler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", a.websocketHandler())
	r.HandleFunc("/chart.svg", a.chartHandler(chart.FormatSVG)).Methods(http.MethodGet)
	r.HandleFunc("/chart.png", a.chartHandler(chart.FormatPNG)).Methods(http.MethodGet)
	r.HandleFunc("/api/figure", a.figureHandler()).Methods(http.MethodGet)
	r.HandleFunc("/api/season", a.seasonHandler()).Methods(http.MethodGet)
}

func (a *Animation) total() int {
	return a.settings.Season.Len()
}

func (a *Animation) figure(round int) chart.Figure {
	return chart.Draw(a.settings.Season, a.settings.Roster, a.settings.Chart, round)
}

// svg renders the chart up to round. Frames are cached since the season
// never changes while serving.
func (a *Animation) svg(round int) (string, error) {
	if cached, ok := a.frames.Load(round); ok {
		return cached.(string), nil
	}
	var b bytes.Buffer
	if err := chart.Render(&b, a.figure(round), chart.FormatSVG); err != nil {
		return "", errors.Wrapf(err, "render round %d", round)
	}
	svg := b.String()
	a.frames.Store(round, svg)
	return svg, nil
}

// parseRound reads the round query parameter. A missing parameter means the
// whole season.
func (a *Animation) parseRound(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("round")
	if raw == "" {
		return a.total(), nil
	}
	round, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("round %q is not a number", raw)
	}
	if round < 1 || round > a.total() {
		return 0, errors.Errorf("round %d out of range 1..%d", round, a.total())
	}
	return round, nil
}

func (a *Animation) chartHandler(format chart.Format) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := a.parseRound(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var b bytes.Buffer
		if format == chart.FormatSVG {
			svg, err := a.svg(round)
			if err != nil {
				log.Println("render:", err)
				http.Error(w, "could not render chart", http.StatusInternalServerError)
				return
			}
			b.WriteString(svg)
		} else if err := chart.Render(&b, a.figure(round), format); err != nil {
			log.Println("render:", err)
			http.Error(w, "could not render chart", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Write(b.Bytes())
	}
}

func (a *Animation) figureHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := a.parseRound(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, a.figure(round))
	}
}

type seasonData struct {
	Races          []string       `json:"races"`
	Total          int            `json:"total"`
	IntervalMillis int64          `json:"intervalMs"`
	Drivers        []model.Driver `json:"drivers"`
}

func (a *Animation) seasonHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, seasonData{
			Races:          a.settings.Season.Races(),
			Total:          a.total(),
			IntervalMillis: a.player.Interval().Milliseconds(),
			Drivers:        a.drivers(),
		})
	}
}

// drivers returns the roster with image links pointing at the cached photos.
func (a *Animation) drivers() []model.Driver {
	drivers := make([]model.Driver, len(a.settings.Roster))
	for i, d := range a.settings.Roster {
		drivers[i] = d
		drivers[i].Image = a.settings.Photos.URLFor(d)
	}
	return drivers
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("marshal:", err)
		http.Error(w, "could not encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

type pageData struct {
	Title    string
	Total    int
	Interval int64
	Chart    template.HTML
	Drivers  []model.Driver
}

func (a *Animation) pageHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		first := 1
		if a.total() == 0 {
			first = 0
		}
		svg, err := a.svg(first)
		if err != nil {
			log.Println("render:", err)
			http.Error(w, "could not render chart", http.StatusInternalServerError)
			return
		}
		data := pageData{
			Title:    a.settings.Chart.Title,
			Total:    a.total(),
			Interval: a.player.Interval().Milliseconds(),
			Chart:    template.HTML(svg),
			Drivers:  a.drivers(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			log.Println("template:", err)
		}
	}
}

// viewer is one websocket connection. gorilla/websocket supports a single
// concurrent writer, so every write goes through send.
type viewer struct {
	id         string
	conn       *websocket.Conn
	out        caster.Caster[ServerMessage]
	mu         sync.Mutex
	controller *playback.Controller
}

func (v *viewer) send(m ServerMessage) error {
	data, err := v.out.To(m)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteMessage(websocket.TextMessage, data)
}

func (a *Animation) frameFunc(v *viewer, last *int) playback.FrameFunc {
	return func(ctx context.Context, round, total int) error {
		svg, err := a.svg(round)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		*last = round
		return v.send(ServerMessage{Type: MessageFrame, Round: round, Total: total, SVG: svg})
	}
}

func (a *Animation) play(ctx context.Context, v *viewer) {
	last := 0
	total := a.total()
	v.controller.Play(ctx, total, a.frameFunc(v, &last), func(err error) {
		done := ServerMessage{Type: MessageDone, Round: last, Total: total}
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			done.Canceled = true
		default:
			log.Printf("viewer %s: playback: %s\n", v.id, err)
			done.Type = MessageError
			done.Error = err.Error()
		}
		if err := v.send(done); err != nil {
			log.Println("write:", err)
		}
	})
}

func (a *Animation) scrub(ctx context.Context, v *viewer, round int) error {
	total := a.total()
	if round < 1 {
		round = 1
	}
	if round > total {
		round = total
	}
	last := 0
	return v.controller.Scrub(ctx, round, total, a.frameFunc(v, &last))
}

func (a *Animation) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		v := &viewer{
			id:         uuid.NewString(),
			conn:       c,
			out:        a.out,
			controller: playback.NewController(a.player),
		}
		defer v.controller.Stop()
		log.Printf("viewer %s connected\n", v.id)

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Println("read:", err)
				}
				log.Printf("viewer %s disconnected\n", v.id)
				return
			}
			m, err := a.in.From(message)
			if err != nil {
				log.Printf("viewer %s: bad message %q: %s\n", v.id, message, err)
				continue
			}
			switch m.Type {
			case MessagePlay:
				a.play(ctx, v)
			case MessageScrub:
				if err := a.scrub(ctx, v, m.Round); err != nil {
					log.Println("write:", err)
					return
				}
			case MessageStop:
				v.controller.Stop()
			default:
				log.Printf("viewer %s: unknown message type %q\n", v.id, m.Type)
			}
		}
	}
}
