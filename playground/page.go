package playground

var htmlPage = `<html>
<head>
	<title>RV32I Assembler</title>
</head>
<body style="background-color: #1E1E1E; color: white; font-family: sans-serif;">
	<h1 style="display: inline-block;">RV32I Assembler</h1>
	<button id="assembleButton" style="margin-left: 50px; height: 40px; width: 100px;">ASSEMBLE</button>
	<br/>
	<div style="display: flex; gap: 20px;">
		<textarea id="source" spellcheck="false" style="width: 600px; height: 600px; font-family: monospace; font-size: 1.1em; background-color: black; color: white; border: 2px solid white;">.text
main:
	li a0, 100000
	call done
done:
	ecall
</textarea>
		<pre id="listing" style="width: 700px; height: 600px; margin: 0; padding: 10px; overflow: auto; background-color: black; border: 2px solid white;"></pre>
	</div>
	<h2>Diagnostics</h2>
	<pre id="diagnostics" style="padding: 10px; background-color: black; border: 2px solid white; min-height: 100px;"></pre>

	<script>
		var socket;

		function hex(v, width) {
			return "0x" + (v >>> 0).toString(16).padStart(width, "0");
		}

		function connect() {
			socket = new WebSocket("ws://" + window.location.host + "/ws");

			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "error") {
					document.getElementById("diagnostics").textContent = data.text;
					return;
				}
				if (data.type != "result") {
					return;
				}

				var lines = [];
				for (const entry of data.result.listing) {
					if (entry.data) {
						lines.push("DATA @" + hex(entry.address, 8) + ": " + entry.hex);
					} else {
						lines.push("PC=" + hex(entry.address, 4) + " | " + entry.source + " → " + entry.hex);
					}
				}
				document.getElementById("listing").textContent = lines.join("\n");

				var messages = [];
				for (const err of data.result.errors) {
					messages.push("error at PC=" + hex(err.pc, 1) + ": " + err.message);
				}
				for (const diag of data.result.diagnostics) {
					var severity = diag.severity == 1 ? "error" : "warning";
					messages.push((diag.range.start.line + 1) + ":" + diag.range.start.character + ": " + severity + ": " + diag.message);
				}
				document.getElementById("diagnostics").textContent = messages.join("\n");
			};

			// when the socket closes, try to reconnect every 3 seconds
			socket.onclose = function() {
				setTimeout(connect, 3000);
			};
		}
		connect();

		document.getElementById("assembleButton").onclick = function() {
			socket.send(JSON.stringify({
				type: "assemble",
				source: document.getElementById("source").value
			}));
		};
	</script>
</body>
</html>`
