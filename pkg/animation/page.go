package animation

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0; display: flex; font-family: sans-serif; }
    #sidebar { width: 260px; padding: 16px; background: #f0f2f6; min-height: 100vh; box-sizing: border-box; }
    #sidebar button { width: 100%; padding: 8px; margin: 8px 0 16px; cursor: pointer; }
    #sidebar input[type=range] { width: 100%; }
    .driver { text-align: center; margin-bottom: 12px; }
    .driver img { display: block; margin: 0 auto; }
    #main { flex: 1; padding: 16px; overflow-x: auto; }
    #chart svg { max-width: 100%; height: auto; }
  </style>
</head>
<body>
  <div id="sidebar">
    <h2>🎮 Race Animation Control</h2>
    <button id="play" type="button">▶️ Play Full Season</button>
    <label for="round">Select Race Round: <span id="roundValue">1</span></label>
    <input id="round" type="range" min="1" max="{{ .Total }}" value="1" step="1">
    <h3>Drivers</h3>
    {{ range .Drivers }}
    <div class="driver">
      <img src="{{ .Image }}" width="150" alt="{{ .Name }}">
      <span>{{ .Name }}</span>
    </div>
    {{ end }}
  </div>

  <div id="main">
    <div id="chart">{{ .Chart }}</div>
  </div>

  <script>
    const chart = document.getElementById('chart');
    const slider = document.getElementById('round');
    const roundValue = document.getElementById('roundValue');
    const playButton = document.getElementById('play');

    const scheme = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
    const socket = new WebSocket(scheme + window.location.host + '/ws');

    function send(message) {
      if (socket.readyState === WebSocket.OPEN) {
        socket.send(JSON.stringify(message));
      }
    }

    socket.addEventListener('open', (event) => {
      console.log('WebSocket connection opened:', event);
    });

    socket.addEventListener('message', (event) => {
      const message = JSON.parse(event.data);
      switch (message.type) {
        case 'frame':
          chart.innerHTML = message.svg;
          slider.value = message.round;
          roundValue.textContent = message.round;
          break;
        case 'done':
          playButton.disabled = false;
          break;
        case 'error':
          playButton.disabled = false;
          console.error('Playback error:', message.error);
          break;
      }
    });

    socket.addEventListener('close', (event) => {
      console.log('WebSocket connection closed:', event);
    });

    socket.addEventListener('error', (event) => {
      console.error('WebSocket connection error:', event);
    });

    playButton.addEventListener('click', () => {
      playButton.disabled = true;
      send({type: 'play'});
    });

    slider.addEventListener('input', () => {
      roundValue.textContent = slider.value;
      send({type: 'scrub', round: parseInt(slider.value, 10)});
    });
  </script>
</body>
</html>
`))
