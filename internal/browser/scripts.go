package browser

// The attribute names match those of package dom so a snapshot taken after
// marking reads back the same way an in-memory document does.

// snapshotJS serializes the page with the rendered size of every element
// under body and the live state of form controls, keyed by child-index path.
const snapshotJS = `() => {
	const boxes = {};
	const state = {};
	const walk = (el, path) => {
		const key = path.join('/');
		const r = el.getBoundingClientRect();
		boxes[key] = {w: r.width, h: r.height, none: getComputedStyle(el).display === 'none'};
		if (el.tagName === 'INPUT' || el.tagName === 'TEXTAREA' || el.tagName === 'SELECT') {
			state[key] = {checked: !!el.checked, value: el.value == null ? '' : String(el.value)};
		}
		let i = 0;
		for (const c of el.children) {
			walk(c, path.concat(i));
			i++;
		}
	};
	walk(document.body, []);
	return JSON.stringify({html: document.documentElement.outerHTML, boxes: boxes, state: state});
}`

const clearMarksJS = `() => {
	let n = 0;
	document.querySelectorAll('[data-quizlens]').forEach(el => {
		const s = el.getAttribute('data-quizlens-style');
		if (s !== null) {
			el.setAttribute('style', s);
			el.removeAttribute('data-quizlens-style');
		} else {
			el.removeAttribute('style');
		}
		el.removeAttribute('data-quizlens');
		n++;
	});
	document.querySelectorAll('[data-quizlens-first]').forEach(s => {
		const p = s.parentNode;
		while (s.firstChild) p.insertBefore(s.firstChild, s);
		p.removeChild(s);
		p.normalize();
	});
	return n;
}`

const markJS = `(sel, name, decls) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	if (!el.hasAttribute('data-quizlens')) {
		const s = el.getAttribute('style');
		if (s !== null) el.setAttribute('data-quizlens-style', s);
	}
	el.setAttribute('data-quizlens', name);
	for (const d of decls) el.style.setProperty(d[0], d[1]);
	return true;
}`

const scrollJS = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	el.scrollIntoView({behavior: 'smooth', block: 'center'});
	return true;
}`

const emphasizeJS = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	if (el.querySelector('[data-quizlens-first]')) return true;
	const w = document.createTreeWalker(el, NodeFilter.SHOW_TEXT, {
		acceptNode: n => {
			const tag = n.parentNode && n.parentNode.tagName;
			if (tag === 'SCRIPT' || tag === 'STYLE') return NodeFilter.FILTER_REJECT;
			return n.data.trim() ? NodeFilter.FILTER_ACCEPT : NodeFilter.FILTER_SKIP;
		}
	});
	const t = w.nextNode();
	if (!t) return true;
	const ch = Array.from(t.data.slice(t.data.search(/\S/)))[0];
	const after = t.splitText(t.data.search(/\S/));
	after.data = after.data.slice(ch.length);
	const strong = document.createElement('strong');
	strong.setAttribute('data-quizlens-first', '');
	strong.textContent = ch;
	t.parentNode.insertBefore(strong, after);
	if (!t.data) t.remove();
	if (!after.data) after.remove();
	return true;
}`

const checkJS = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	if (el.type === 'radio' || !el.checked) el.click();
	return true;
}`

const clickJS = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	el.click();
	return true;
}`
