package browser

// evasionScript runs before any page script in evasion mode and masks the
// most common automation fingerprints.
const evasionScript = `() => {
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	if (!navigator.plugins || navigator.plugins.length === 0) {
		Object.defineProperty(navigator, 'plugins', {
			get: () => [
				{ name: 'Chrome PDF Plugin' },
				{ name: 'Chrome PDF Viewer' },
				{ name: 'Native Client' }
			]
		});
	}
	if (!window.chrome) {
		window.chrome = { runtime: {} };
	}
	const query = window.navigator.permissions && window.navigator.permissions.query;
	if (query) {
		window.navigator.permissions.query = (parameters) =>
			parameters.name === 'notifications'
				? Promise.resolve({ state: Notification.permission })
				: query(parameters);
	}
}`
