package app

// indexHTML is the single UI page. One page serves any number of loaded
// files: each file renders as a panel (two per row) with its own material
// selection, color mode and measurement inputs, all driven over the
// websocket.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>3D Model Mass &amp; Measurement Tool</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
    body { margin: 0; font-family: Arial, sans-serif; background: #1d2330; color: #e8e8e8; }
    header { padding: 14px 20px; background: #141824; }
    header h1 { margin: 0; font-size: 20px; }
    #controls { display: flex; gap: 24px; align-items: center; padding: 12px 20px; flex-wrap: wrap; }
    #panels { display: grid; grid-template-columns: repeat(2, 1fr); gap: 16px; padding: 0 20px 20px; }
    .panel { background: #242b3d; border-radius: 8px; padding: 12px; }
    .panel h2 { margin: 0 0 8px; font-size: 16px; }
    .panel .row { display: flex; gap: 12px; align-items: center; margin: 6px 0; flex-wrap: wrap; }
    .panel .plot { height: 420px; }
    .panel .error { color: #ff7b72; margin: 6px 0; }
    table { border-collapse: collapse; width: 100%; font-size: 13px; margin-top: 8px; }
    th, td { border: 1px solid #3a4358; padding: 4px 8px; text-align: left; }
    th { background: #2e3750; }
    select, input[type=number] { background: #1d2330; color: #e8e8e8; border: 1px solid #3a4358; padding: 3px 6px; }
    .distance { font-weight: bold; color: #7ee787; }
</style>
</head>
<body>
<header><h1>3D Model Mass, Volume &amp; Manual Measurement Tool</h1></header>

<div id="controls">
    <label>File type
        <select id="fileType">
            <option value="stl" selected>STL</option>
            <option value="step,stp">STEP</option>
            <option value="x_t,x_b">Parasolid</option>
            <option value="prt">NX Part</option>
        </select>
    </label>
    <input type="file" id="files" multiple accept=".stl">
    <button id="upload">Upload</button>
    <label>Infill <span id="infillValue">100</span>%
        <input type="range" id="infill" min="0" max="100" step="5" value="100">
    </label>
</div>

<div id="panels"></div>

<script>
let materials = [];
let panels = {};   // file name -> panel state
let ws = null;

function connect() {
    ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    ws.onmessage = function(ev) { render(JSON.parse(ev.data)); };
    ws.onclose = function() { setTimeout(connect, 1000); };
}

function interaction(file) {
    const p = panels[file];
    return {
        file: file,
        infillPercent: parseInt(document.getElementById('infill').value, 10),
        material: p.material,
        colorBy: p.colorBy,
        v1: p.v1,
        v2: p.v2
    };
}

function send(file) {
    if (ws && ws.readyState === WebSocket.OPEN) {
        ws.send(JSON.stringify(interaction(file)));
    }
}

function sendAll() {
    Object.keys(panels).forEach(send);
}

function ensurePanel(payload) {
    const file = payload.file;
    if (panels[file]) return panels[file];

    const panel = { material: materials.length ? materials[0].name : 'PLA',
                    colorBy: 'z', v1: 0, v2: 1 };
    panels[file] = panel;

    const div = document.createElement('div');
    div.className = 'panel';
    div.id = 'panel-' + file;
    div.innerHTML =
        '<h2>' + file + '</h2>' +
        '<div class="row">' +
        '<label>Material <select class="material"></select></label>' +
        '<label>Color by <select class="colorBy">' +
        '<option value="z">Height</option>' +
        '<option value="curvature">Curvature</option>' +
        '<option value="distance">Centroid distance</option>' +
        '</select></label>' +
        '</div>' +
        '<div class="row">' +
        '<label>Vertex 1 <input type="number" class="v1" min="0" value="0"></label>' +
        '<label>Vertex 2 <input type="number" class="v2" min="0" value="1"></label>' +
        '<span>Distance: <span class="distance">-</span></span>' +
        '</div>' +
        '<div class="error"></div>' +
        '<div class="plot"></div>' +
        '<h3>Model Analysis</h3><div class="metrics"></div>' +
        '<h3>Mass Estimates</h3><div class="mass"></div>';
    document.getElementById('panels').appendChild(div);

    const matSel = div.querySelector('.material');
    materials.forEach(function(m) {
        const opt = document.createElement('option');
        opt.value = m.name;
        opt.textContent = m.name + ' (' + m.density.toFixed(3) + ' g/cm³)';
        matSel.appendChild(opt);
    });

    matSel.onchange = function() { panel.material = matSel.value; send(file); };
    div.querySelector('.colorBy').onchange = function(e) { panel.colorBy = e.target.value; send(file); };
    div.querySelector('.v1').onchange = function(e) { panel.v1 = clampIndex(e.target, payload.vertexCount); send(file); };
    div.querySelector('.v2').onchange = function(e) { panel.v2 = clampIndex(e.target, payload.vertexCount); send(file); };
    return panel;
}

function clampIndex(input, vertexCount) {
    let v = parseInt(input.value, 10) || 0;
    v = Math.max(0, Math.min(v, vertexCount - 1));
    input.value = v;
    return v;
}

function render(payload) {
    ensurePanel(payload);
    const div = document.getElementById('panel-' + payload.file);
    const errDiv = div.querySelector('.error');
    errDiv.textContent = payload.error || '';
    if (!payload.scene) return;

    div.querySelector('.v1').max = payload.vertexCount - 1;
    div.querySelector('.v2').max = payload.vertexCount - 1;
    div.querySelector('.distance').textContent = payload.distanceCM.toFixed(2) + ' cm';

    const traces = [payload.scene.mesh].concat(payload.scene.lines.map(function(l) {
        l.marker = { size: 4, color: 'red' };
        l.line = { color: 'red', width: 4 };
        return l;
    }));
    const ann = payload.scene.annotation;
    Plotly.react(div.querySelector('.plot'), traces, {
        margin: { l: 0, r: 0, t: 0, b: 0 },
        paper_bgcolor: '#242b3d',
        scene: { xaxis: { title: 'X' }, yaxis: { title: 'Y' }, zaxis: { title: 'Z' } },
        annotations: [{
            text: '<b>Material:</b> ' + ann.material + '<br><b>Mass:</b> ' + ann.massText,
            xref: 'paper', yref: 'paper', x: 0.02, y: 0.98, showarrow: false,
            font: { size: 14, color: 'white' }, bgcolor: 'black',
            bordercolor: 'white', borderpad: 6
        }],
        showlegend: false
    }, { responsive: true });

    div.querySelector('.metrics').innerHTML = metricsTable(payload.metrics, ann);
    div.querySelector('.mass').innerHTML = massTable(payload.massRows);
}

function metricsTable(m, ann) {
    return '<table>' +
        '<tr><th>Property</th><th>Value</th></tr>' +
        '<tr><td>File Size</td><td>' + m.fileSizeKB.toFixed(2) + ' KB</td></tr>' +
        '<tr><td>Triangles</td><td>' + m.triangles + '</td></tr>' +
        '<tr><td>Bounding Box (cm)</td><td>W: ' + m.widthCM.toFixed(2) +
            ', D: ' + m.depthCM.toFixed(2) + ', H: ' + m.heightCM.toFixed(2) + '</td></tr>' +
        '<tr><td>Surface Area</td><td>' + m.surfaceCM2.toFixed(4) + ' cm²</td></tr>' +
        '<tr><td>Volume (solid)</td><td>' + m.volumeCM3.toFixed(4) + ' cm³</td></tr>' +
        '<tr><td>Material / Mass</td><td>' + ann.material + ' / ' + ann.massText + '</td></tr>' +
        '</table>';
}

function massTable(rows) {
    let html = '<table><tr><th>ID</th><th>Material</th><th>Density</th>' +
        '<th>Mass @infill (g)</th><th>Mass @100% (g)</th></tr>';
    rows.forEach(function(r) {
        html += '<tr><td>' + r.id + '</td><td>' + r.material + '</td><td>' +
            r.density.toFixed(3) + '</td><td>' + r.massAtInfill.toFixed(2) +
            '</td><td>' + r.massAtFull.toFixed(2) + '</td></tr>';
    });
    return html + '</table>';
}

document.getElementById('infill').oninput = function(e) {
    document.getElementById('infillValue').textContent = e.target.value;
    sendAll();
};

document.getElementById('fileType').onchange = function(e) {
    document.getElementById('files').accept =
        e.target.value.split(',').map(function(x) { return '.' + x; }).join(',');
};

document.getElementById('upload').onclick = function() {
    const input = document.getElementById('files');
    if (!input.files.length) return;

    const form = new FormData();
    for (const f of input.files) form.append('models', f);
    form.append('infillPercent', document.getElementById('infill').value);

    fetch('/api/upload', { method: 'POST', body: form })
        .then(function(r) { return r.json(); })
        .then(function(payloads) { payloads.forEach(render); });
};

fetch('/api/materials')
    .then(function(r) { return r.json(); })
    .then(function(list) {
        materials = list;
        return fetch('/api/files');
    })
    .then(function(r) { return r.json(); })
    .then(function(payloads) { payloads.forEach(render); });

connect();
</script>
</body>
</html>
`
